// Package xmlexport serializa el saldo de bodega a XML para integraciones externas.
package xmlexport

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

var _ usecase.BalanceExporter = (*BalanceExporter)(nil)

// Namespace del documento de saldo.
const NsBalance = "urn:almacen:balance:v1"

// BalanceExporter construye el XML del saldo con etree.
//
//	<Balance xmlns="urn:almacen:balance:v1" generatedAt="..." count="N">
//	  <Item id=".." >
//	    <Resource id="..">nombre</Resource>
//	    <Unit id="..">nombre</Unit>
//	    <Quantity>12.5</Quantity>
//	  </Item>
//	</Balance>
type BalanceExporter struct {
	source string
}

// NewBalanceExporter construye el exportador; source identifica a la bodega emisora.
func NewBalanceExporter(source string) *BalanceExporter {
	return &BalanceExporter{source: source}
}

// ExportBalance devuelve el documento XML indentado.
func (e *BalanceExporter) ExportBalance(_ context.Context, items []dto.BalanceResponse, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Balance")
	root.CreateAttr("xmlns", NsBalance)
	root.CreateAttr("source", e.source)
	root.CreateAttr("generatedAt", generatedAt.Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(items)))

	for _, b := range items {
		item := root.CreateElement("Item")
		item.CreateAttr("id", strconv.FormatInt(b.ID, 10))

		res := item.CreateElement("Resource")
		res.CreateAttr("id", strconv.FormatInt(b.ResourceID, 10))
		res.SetText(b.ResourceName)

		unit := item.CreateElement("Unit")
		unit.CreateAttr("id", strconv.FormatInt(b.UnitOfMeasureID, 10))
		unit.SetText(b.UnitName)

		item.CreateElement("Quantity").SetText(b.Quantity.String())
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: serializar saldo: %w", err)
	}
	return out.Bytes(), nil
}
