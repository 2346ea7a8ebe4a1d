package estudiantes

import (
	"strings"
	"testing"
)

func TestGenerarCodigo(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		codigo := generarCodigo()
		if len(codigo) != 12 {
			t.Fatalf("len(%q) = %d, want 12", codigo, len(codigo))
		}
		for _, c := range codigo {
			if !strings.ContainsRune(codigoChars, c) {
				t.Fatalf("codigo %q contains %q outside the charset", codigo, c)
			}
		}
		seen[codigo] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct codes across generations")
	}
}

func TestApoderadoInputConversion(t *testing.T) {
	id := int64(7)
	dni := "12345678"
	in := ApoderadoInput{
		ID:                &id,
		DNI:               &dni,
		Vive:              true,
		ViveConEstudiante: false,
		FlLegalizado:      true,
	}

	a := in.apoderado(TipoApoderado, 42)

	if a.ID != 7 || a.IDEstudiante != 42 || a.Tipo != TipoApoderado {
		t.Fatalf("apoderado = %+v", a)
	}
	if a.Vive != 1 || a.ViveConEstudiante != 0 || a.FlLegalizado != 1 {
		t.Fatalf("flags = vive %d, vive_con %d, legalizado %d", a.Vive, a.ViveConEstudiante, a.FlLegalizado)
	}
	if a.DNI == nil || *a.DNI != dni {
		t.Fatalf("dni = %v", a.DNI)
	}
}

func TestBoolToInt(t *testing.T) {
	if boolToInt(true) != 1 || boolToInt(false) != 0 {
		t.Fatal("boolToInt mapping is wrong")
	}
}
