package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var (
	_ repository.ReceiptDocumentRepository  = (*ReceiptDocumentRepo)(nil)
	_ repository.ShipmentDocumentRepository = (*ShipmentDocumentRepo)(nil)
)

// ReceiptDocumentRepo documentos de ingreso en memoria.
type ReceiptDocumentRepo struct{ base }

func (r *ReceiptDocumentRepo) Create(_ context.Context, doc *entity.ReceiptDocument) error {
	return r.do(func(st *state) error {
		for _, d := range st.receipts {
			if sameName(d.Number, doc.Number) {
				return domain.DuplicateDocumentNumber("documento de ingreso", doc.Number)
			}
		}
		doc.ID = st.nextID("receipt_documents")
		st.assignReceiptLines(doc)
		st.receipts[doc.ID] = cloneReceipt(doc)
		return nil
	})
}

func (r *ReceiptDocumentRepo) GetWithResources(_ context.Context, id int64) (*entity.ReceiptDocument, error) {
	var out *entity.ReceiptDocument
	err := r.do(func(st *state) error {
		if d, ok := st.receipts[id]; ok {
			out = st.resolveReceipt(d)
		}
		return nil
	})
	return out, err
}

func (r *ReceiptDocumentRepo) Update(_ context.Context, doc *entity.ReceiptDocument) error {
	return r.do(func(st *state) error {
		if _, ok := st.receipts[doc.ID]; !ok {
			return domain.NotFound("documento de ingreso", doc.ID)
		}
		st.assignReceiptLines(doc)
		st.receipts[doc.ID] = cloneReceipt(doc)
		return nil
	})
}

func (r *ReceiptDocumentRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		delete(st.receipts, id)
		return nil
	})
}

func (r *ReceiptDocumentRepo) ExistsByNumber(_ context.Context, number string, excludeID int64) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		for _, d := range st.receipts {
			if d.ID != excludeID && sameName(d.Number, number) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *ReceiptDocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.ReceiptDocument, error) {
	var out []*entity.ReceiptDocument
	err := r.do(func(st *state) error {
		for _, d := range st.receipts {
			if filter.Matches(d.Date, d.Number, repository.ReceiptLines(d.Resources)) {
				out = append(out, st.resolveReceipt(d))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.ReceiptDocument) int {
		return repository.CompareDocuments(a.Date, a.Number, b.Date, b.Number)
	})
	return out, err
}

// ShipmentDocumentRepo documentos de despacho en memoria.
type ShipmentDocumentRepo struct{ base }

func (r *ShipmentDocumentRepo) Create(_ context.Context, doc *entity.ShipmentDocument) error {
	return r.do(func(st *state) error {
		for _, d := range st.shipments {
			if sameName(d.Number, doc.Number) {
				return domain.DuplicateDocumentNumber("documento de despacho", doc.Number)
			}
		}
		doc.ID = st.nextID("shipment_documents")
		st.assignShipmentLines(doc)
		st.shipments[doc.ID] = cloneShipment(doc)
		return nil
	})
}

func (r *ShipmentDocumentRepo) GetWithResources(_ context.Context, id int64) (*entity.ShipmentDocument, error) {
	var out *entity.ShipmentDocument
	err := r.do(func(st *state) error {
		if d, ok := st.shipments[id]; ok {
			out = st.resolveShipment(d)
		}
		return nil
	})
	return out, err
}

func (r *ShipmentDocumentRepo) Update(_ context.Context, doc *entity.ShipmentDocument) error {
	return r.do(func(st *state) error {
		if _, ok := st.shipments[doc.ID]; !ok {
			return domain.NotFound("documento de despacho", doc.ID)
		}
		st.assignShipmentLines(doc)
		st.shipments[doc.ID] = cloneShipment(doc)
		return nil
	})
}

func (r *ShipmentDocumentRepo) Delete(_ context.Context, id int64) error {
	return r.do(func(st *state) error {
		delete(st.shipments, id)
		return nil
	})
}

func (r *ShipmentDocumentRepo) ExistsByNumber(_ context.Context, number string, excludeID int64) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		for _, d := range st.shipments {
			if d.ID != excludeID && sameName(d.Number, number) {
				found = true
			}
		}
		return nil
	})
	return found, err
}

func (r *ShipmentDocumentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.ShipmentDocument, error) {
	var out []*entity.ShipmentDocument
	err := r.do(func(st *state) error {
		for _, d := range st.shipments {
			if filter.Matches(d.Date, d.Number, repository.ShipmentLines(d.Resources)) {
				out = append(out, st.resolveShipment(d))
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.ShipmentDocument) int {
		return repository.CompareDocuments(a.Date, a.Number, b.Date, b.Number)
	})
	return out, err
}

// assignReceiptLines asigna IDs a las líneas nuevas y el documento dueño a todas.
func (st *state) assignReceiptLines(doc *entity.ReceiptDocument) {
	for i := range doc.Resources {
		if doc.Resources[i].ID == 0 {
			doc.Resources[i].ID = st.nextID("receipt_resources")
		}
		doc.Resources[i].ReceiptDocumentID = doc.ID
	}
}

func (st *state) assignShipmentLines(doc *entity.ShipmentDocument) {
	for i := range doc.Resources {
		if doc.Resources[i].ID == 0 {
			doc.Resources[i].ID = st.nextID("shipment_resources")
		}
		doc.Resources[i].ShipmentDocumentID = doc.ID
	}
}

func (st *state) resolveReceipt(d *entity.ReceiptDocument) *entity.ReceiptDocument {
	out := cloneReceipt(d)
	for i := range out.Resources {
		l := &out.Resources[i]
		l.ResourceName, l.UnitName = st.lineNames(l.ResourceID, l.UnitOfMeasureID)
	}
	return out
}

func (st *state) resolveShipment(d *entity.ShipmentDocument) *entity.ShipmentDocument {
	out := cloneShipment(d)
	for i := range out.Resources {
		l := &out.Resources[i]
		l.ResourceName, l.UnitName = st.lineNames(l.ResourceID, l.UnitOfMeasureID)
	}
	if c, ok := st.clients[d.ClientID]; ok {
		out.ClientName = c.Name
	}
	return out
}
