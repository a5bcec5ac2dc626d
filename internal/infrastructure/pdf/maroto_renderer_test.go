package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
)

func TestRenderShipment_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoRenderer("Bodega Central")
	doc := &dto.ShipmentResponse{
		ID:             7,
		Number:         "D-007",
		ClientName:     "Ferretería El Tornillo",
		Date:           time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		DocumentStatus: "approved",
		Resources: []dto.DocumentLineResponse{
			{ResourceName: "Cemento", UnitName: "bulto", Quantity: decimal.NewFromInt(12)},
		},
	}

	out, err := g.RenderShipment(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestRenderReceipt_SinLineas(t *testing.T) {
	g := pdf.NewMarotoRenderer("Bodega Central")
	out, err := g.RenderReceipt(context.Background(), &dto.ReceiptResponse{
		Number: "I-001",
		Date:   time.Now(),
		Status: "active",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderBalance_Reporte(t *testing.T) {
	g := pdf.NewMarotoRenderer("Bodega Central")
	out, err := g.RenderBalance(context.Background(), []dto.BalanceResponse{
		{ResourceName: "Arena", UnitName: "m3", Quantity: decimal.RequireFromString("3.5")},
	}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
