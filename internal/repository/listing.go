package repository

import (
	"sort"
	"strings"

	"optigest/internal/apierror"
)

// orderClause resolves a requested sort column against a per-entity whitelist
// and normalizes the direction. The returned column is always a value from the
// whitelist map, never caller input, so it is safe to splice into ORDER BY.
func orderClause(allowed map[string]string, orderBy, orderDir string) (col, dir string, err error) {
	col, ok := allowed[strings.ToLower(strings.TrimSpace(orderBy))]
	if !ok {
		opts := make([]string, 0, len(allowed))
		for k := range allowed {
			opts = append(opts, k)
		}
		sort.Strings(opts)
		return "", "", apierror.Invalid("order_by inválido. Opciones: %s", strings.Join(opts, ", "))
	}
	dir = "ASC"
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		dir = "DESC"
	}
	return col, dir, nil
}
