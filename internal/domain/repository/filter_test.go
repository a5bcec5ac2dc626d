package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestDocumentFilter_NormalizedDiaCompleto(t *testing.T) {
	from := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	f := DocumentFilter{DateFrom: &from, DateTo: &to, Numbers: []string{" IN-1 ", "", "  "}}.Normalized()

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, []string{"IN-1"}, f.Numbers)

	assert.True(t, f.MatchesHeader(time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC), "IN-1"))
	assert.False(t, f.MatchesHeader(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), "IN-1"))
	assert.False(t, f.MatchesHeader(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), "IN-1"))
	assert.False(t, f.MatchesHeader(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), "IN-2"))
}

func TestDocumentFilter_MatchesLinesPorFamilia(t *testing.T) {
	lines := []entity.ResourceLine{
		{ResourceID: 1, UnitOfMeasureID: 10},
		{ResourceID: 2, UnitOfMeasureID: 20},
	}
	tests := []struct {
		name   string
		filter DocumentFilter
		want   bool
	}{
		{"sin filtro", DocumentFilter{}, true},
		{"recurso presente", DocumentFilter{ResourceIDs: []int64{2, 9}}, true},
		{"recurso ausente", DocumentFilter{ResourceIDs: []int64{9}}, false},
		{"recurso y unidad en líneas distintas", DocumentFilter{ResourceIDs: []int64{1}, UnitIDs: []int64{20}}, true},
		{"unidad ausente", DocumentFilter{UnitIDs: []int64{30}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.MatchesLines(lines))
		})
	}
	assert.False(t, DocumentFilter{ResourceIDs: []int64{1}}.MatchesLines(nil))
}

func TestCompareDocuments_FechaDescYNumeroAsc(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	assert.Negative(t, CompareDocuments(d2, "B", d1, "A"), "fecha más reciente primero")
	assert.Negative(t, CompareDocuments(d1, "A", d1, "B"))
	assert.Zero(t, CompareDocuments(d1, "A", d1, "A"))
}

func TestEndOfDay_UltimoInstante(t *testing.T) {
	loc := time.FixedZone("COT", -5*3600)
	got := EndOfDay(time.Date(2024, 7, 10, 8, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 7, 10, 23, 59, 59, 999999999, loc), got)
}
