package empresa

// Empresa is the tenant's company profile. Logos are stored as filenames
// only; the SPA resolves them against its asset host.
type Empresa struct {
	ID              int64   `json:"id"`
	NumeroDocumento string  `json:"numero_documento"`
	RazonSocial     string  `json:"razon_social"`
	NombreComercial string  `json:"nombre_comercial"`
	Direccion       string  `json:"direccion"`
	Telefono        string  `json:"telefono"`
	Email           string  `json:"email"`
	Logo            *string `json:"logo"`
	LogoFactura     *string `json:"logo_factura"`
}
