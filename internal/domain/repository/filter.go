package repository

import (
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos. Las tres familias (fechas, números,
// recursos/unidades) se combinan con AND; los valores dentro de una familia con OR.
// Un slice vacío o nil no filtra.
type DocumentFilter struct {
	DateFrom    *time.Time
	DateTo      *time.Time
	Numbers     []string
	ResourceIDs []int64
	UnitIDs     []int64
}

// BalanceFilter filtros del listado de saldos.
type BalanceFilter struct {
	ResourceIDs []int64
	UnitIDs     []int64
}

// StartOfDay devuelve las 00:00 del día de t, en su misma zona.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay devuelve el último instante del día de t (inicio del día siguiente menos 1ns).
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Normalized recorta los números, descarta los vacíos y lleva las fechas a límites de día.
func (f DocumentFilter) Normalized() DocumentFilter {
	out := DocumentFilter{
		ResourceIDs: f.ResourceIDs,
		UnitIDs:     f.UnitIDs,
	}
	if f.DateFrom != nil {
		from := StartOfDay(*f.DateFrom)
		out.DateFrom = &from
	}
	if f.DateTo != nil {
		to := EndOfDay(*f.DateTo)
		out.DateTo = &to
	}
	for _, n := range f.Numbers {
		if n = strings.TrimSpace(n); n != "" {
			out.Numbers = append(out.Numbers, n)
		}
	}
	return out
}

// MatchesHeader evalúa fecha y número. Espera un filtro ya normalizado.
func (f DocumentFilter) MatchesHeader(date time.Time, number string) bool {
	if f.DateFrom != nil && date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && date.After(*f.DateTo) {
		return false
	}
	if len(f.Numbers) > 0 && !slices.Contains(f.Numbers, number) {
		return false
	}
	return true
}

// MatchesLines: alguna línea con recurso del filtro y alguna línea con unidad del filtro.
func (f DocumentFilter) MatchesLines(lines []entity.ResourceLine) bool {
	if len(f.ResourceIDs) > 0 && !anyLine(lines, func(l entity.ResourceLine) bool {
		return slices.Contains(f.ResourceIDs, l.ResourceID)
	}) {
		return false
	}
	if len(f.UnitIDs) > 0 && !anyLine(lines, func(l entity.ResourceLine) bool {
		return slices.Contains(f.UnitIDs, l.UnitOfMeasureID)
	}) {
		return false
	}
	return true
}

// Matches combina cabecera y líneas.
func (f DocumentFilter) Matches(date time.Time, number string, lines []entity.ResourceLine) bool {
	return f.MatchesHeader(date, number) && f.MatchesLines(lines)
}

// Matches evalúa una fila de saldo contra el filtro.
func (f BalanceFilter) Matches(b *entity.Balance) bool {
	if len(f.ResourceIDs) > 0 && !slices.Contains(f.ResourceIDs, b.ResourceID) {
		return false
	}
	if len(f.UnitIDs) > 0 && !slices.Contains(f.UnitIDs, b.UnitOfMeasureID) {
		return false
	}
	return true
}

// CompareDocuments orden de los listados: fecha descendente y, a igual fecha, número ascendente.
func CompareDocuments(dateA time.Time, numberA string, dateB time.Time, numberB string) int {
	if c := dateB.Compare(dateA); c != 0 {
		return c
	}
	return strings.Compare(numberA, numberB)
}

// ReceiptLines proyecta las líneas de un ingreso a su forma común.
func ReceiptLines(rs []entity.ReceiptResource) []entity.ResourceLine {
	out := make([]entity.ResourceLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ResourceLine)
	}
	return out
}

// ShipmentLines proyecta las líneas de un despacho a su forma común.
func ShipmentLines(rs []entity.ShipmentResource) []entity.ResourceLine {
	out := make([]entity.ResourceLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ResourceLine)
	}
	return out
}

func anyLine(lines []entity.ResourceLine, pred func(entity.ResourceLine) bool) bool {
	for _, l := range lines {
		if pred(l) {
			return true
		}
	}
	return false
}
