// seed_catalog genera un script SQL que carga el catálogo de productos a partir de la
// exportación CSV del ERP (separador ';', codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv] [salida.sql]
// Por defecto lee catalogo.csv del directorio actual y escribe seed_catalog.sql en la raíz
// del módulo.
//
// Columnas: codigo;nombre;descripcion;material;familia;costo;precio_lista;unidades_paquete;punto_reorden
// Costo o precio vacíos quedan como NULL (desconocido).
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const columns = 9

type catalogRow struct {
	Code            string
	Name            string
	Description     string
	Material        string
	Family          string
	Cost            *decimal.Decimal
	ListPrice       *decimal.Decimal
	UnitsPerPackage int
	ReorderPoint    decimal.Decimal
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := readCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d filas descartadas\n", outPath, len(rows), skipped)
}

// readCatalog decodifica ISO-8859-1 y devuelve las filas válidas ordenadas por código. La
// primera línea es el encabezado. Filas sin código o nombre, o con números ilegibles, se
// descartan; un código repetido conserva la última aparición.
func readCatalog(r io.Reader) ([]catalogRow, int, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("encabezado: %w", err)
	}

	byCode := make(map[string]catalogRow)
	skipped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		row, ok := parseRow(rec)
		if !ok {
			skipped++
			continue
		}
		byCode[row.Code] = row
	}

	rows := make([]catalogRow, 0, len(byCode))
	for _, row := range byCode {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, skipped, nil
}

func parseRow(rec []string) (catalogRow, bool) {
	if len(rec) < columns {
		return catalogRow{}, false
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := catalogRow{
		Code:            rec[0],
		Name:            rec[1],
		Description:     rec[2],
		Material:        rec[3],
		Family:          rec[4],
		UnitsPerPackage: 1,
	}
	if row.Code == "" || row.Name == "" {
		return catalogRow{}, false
	}

	var ok bool
	if row.Cost, ok = optionalAmount(rec[5]); !ok {
		return catalogRow{}, false
	}
	if row.ListPrice, ok = optionalAmount(rec[6]); !ok {
		return catalogRow{}, false
	}
	if rec[7] != "" {
		n, err := strconv.Atoi(rec[7])
		if err != nil || n < 1 {
			return catalogRow{}, false
		}
		row.UnitsPerPackage = n
	}
	if rp, _ := optionalAmount(rec[8]); rp != nil {
		row.ReorderPoint = *rp
	}
	return row, true
}

// optionalAmount acepta coma decimal ("12,50"). Vacío -> nil. Negativos no son válidos.
func optionalAmount(s string) (*decimal.Decimal, bool) {
	if s == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.IsNegative() {
		return nil, false
	}
	return &d, true
}

func writeSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos\n")
	b.WriteString("-- Generado con cmd/seed_catalog\n\n")
	if len(rows) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("INSERT INTO products (product_code, name, description, material_type, family, cost, list_price, units_per_package, reorder_point) VALUES\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', %s, %s, %d, %s)",
			escapeSQL(r.Code), escapeSQL(r.Name), escapeSQL(r.Description),
			escapeSQL(r.Material), escapeSQL(r.Family),
			sqlAmount(r.Cost), sqlAmount(r.ListPrice), r.UnitsPerPackage, r.ReorderPoint.String())
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (product_code) DO UPDATE SET\n")
	b.WriteString("  name = EXCLUDED.name, description = EXCLUDED.description,\n")
	b.WriteString("  material_type = EXCLUDED.material_type, family = EXCLUDED.family,\n")
	b.WriteString("  cost = EXCLUDED.cost, list_price = EXCLUDED.list_price,\n")
	b.WriteString("  units_per_package = EXCLUDED.units_per_package, reorder_point = EXCLUDED.reorder_point,\n")
	b.WriteString("  updated_at = NOW();\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func sqlAmount(d *decimal.Decimal) string {
	if d == nil {
		return "NULL"
	}
	return d.String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
