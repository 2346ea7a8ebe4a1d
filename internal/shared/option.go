package shared

import "github.com/jackc/pgx/v5"

// Option is one dropdown row in the shape the SPA selects consume.
type Option struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// CollectOptions drains (id, text) rows into a slice, never nil.
func CollectOptions(rows pgx.Rows) ([]Option, error) {
	defer rows.Close()

	options := []Option{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.Text); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
