// Package catalogxml lee el catálogo inicial (recursos, unidades y clientes) desde XML.
// Acepta UTF-8 e ISO-8859-1, la codificación habitual de las exportaciones de hojas de cálculo.
package catalogxml

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Client entrada de cliente del catálogo.
type Client struct {
	Name    string
	Address string
}

// Catalog contenido del archivo, sin duplicados exactos y sin nombres vacíos.
type Catalog struct {
	Resources []string
	Units     []string
	Clients   []Client
}

// Parse lee un documento de la forma:
//
//	<catalogo>
//	  <recursos><recurso nombre="Cemento"/></recursos>
//	  <unidades><unidad nombre="Saco"/></unidades>
//	  <clientes><cliente nombre="Obra Norte" direccion="Calle 1"/></clientes>
//	</catalogo>
func Parse(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalogo")
	if root == nil {
		return nil, fmt.Errorf("leer XML: falta el elemento raíz <catalogo>")
	}

	cat := &Catalog{
		Resources: names(root.FindElements("./recursos/recurso")),
		Units:     names(root.FindElements("./unidades/unidad")),
	}
	seen := map[string]bool{}
	for _, el := range root.FindElements("./clientes/cliente") {
		name := strings.TrimSpace(el.SelectAttrValue("nombre", ""))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cat.Clients = append(cat.Clients, Client{
			Name:    name,
			Address: strings.TrimSpace(el.SelectAttrValue("direccion", "")),
		})
	}
	return cat, nil
}

func names(elements []*etree.Element) []string {
	var out []string
	seen := map[string]bool{}
	for _, el := range elements {
		name := strings.TrimSpace(el.SelectAttrValue("nombre", ""))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "UTF-8":
		return input, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", charset)
}
