package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func latin1(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestReadCatalog(t *testing.T) {
	src := strings.Join([]string{
		"codigo;nombre;descripcion;material;familia;costo;precio_lista;unidades_paquete;punto_reorden",
		"TAZ-02;Taza café;Taza de 12 oz;Cerámica;Tazas;3,50;8,00;6;24",
		"TAZ-01;Taza té;;Cerámica;Tazas;;9.5;;10",
		";Sin código;;;;1;2;1;0",
		"PLA-01;Plato;;Loza;Platos;-1;5;1;0",
		"TAZ-02;Taza café;Taza de 12 oz;Cerámica;Tazas;3,75;8,00;6;24",
	}, "\n")

	rows, skipped, err := readCatalog(latin1(t, src))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, "TAZ-01", rows[0].Code)
	assert.Equal(t, "Taza té", rows[0].Name)
	assert.Nil(t, rows[0].Cost)
	require.NotNil(t, rows[0].ListPrice)
	assert.Equal(t, "9.5", rows[0].ListPrice.String())
	assert.Equal(t, 1, rows[0].UnitsPerPackage)

	assert.Equal(t, "TAZ-02", rows[1].Code)
	assert.Equal(t, "Cerámica", rows[1].Material)
	require.NotNil(t, rows[1].Cost)
	assert.Equal(t, "3.75", rows[1].Cost.String())
	assert.Equal(t, 6, rows[1].UnitsPerPackage)
}

func TestWriteSQL(t *testing.T) {
	rows, _, err := readCatalog(latin1(t, "h\nO'K-1;Vaso d'or;;;;;2;1;0\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, rows))
	sql := out.String()
	assert.Contains(t, sql, "('O''K-1', 'Vaso d''or', '', '', '', NULL, 2, 1, 0)")
	assert.Contains(t, sql, "ON CONFLICT (product_code) DO UPDATE SET")
}
