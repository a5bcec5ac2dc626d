package catalogxml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `<?xml version="1.0" encoding="%s"?>
<catalogo>
  <recursos>
    <recurso nombre="Cemento"/>
    <recurso nombre=" Ladrillo "/>
    <recurso nombre="Cemento"/>
    <recurso nombre=""/>
  </recursos>
  <unidades><unidad nombre="Metro cúbico"/></unidades>
  <clientes>
    <cliente nombre="Construcciones Peña" direccion="Calle 10 # 5-20"/>
    <cliente nombre="Sin dirección"/>
  </clientes>
</catalogo>`

func TestParse_UTF8(t *testing.T) {
	cat, err := Parse(strings.NewReader(strings.Replace(sample, "%s", "UTF-8", 1)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Cemento", "Ladrillo"}, cat.Resources)
	assert.Equal(t, []string{"Metro cúbico"}, cat.Units)
	require.Len(t, cat.Clients, 2)
	assert.Equal(t, Client{Name: "Construcciones Peña", Address: "Calle 10 # 5-20"}, cat.Clients[0])
	assert.Empty(t, cat.Clients[1].Address)
}

func TestParse_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(strings.Replace(sample, "%s", "ISO-8859-1", 1))
	require.NoError(t, err)

	cat, err := Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Metro cúbico"}, cat.Units)
	assert.Equal(t, "Construcciones Peña", cat.Clients[0].Name)
}

func TestParse_SinRaiz(t *testing.T) {
	_, err := Parse(strings.NewReader(`<otro/>`))
	assert.Error(t, err)
}
