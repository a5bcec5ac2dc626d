package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(CodeInvalidArgument, "id inválido")
	}
	return id, nil
}

// queryValues admite valores repetidos (?k=a&k=b) y separados por coma (?k=a,b).
func queryValues(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryIDs(c *fiber.Ctx, key string) ([]int64, error) {
	var ids []int64
	for _, v := range queryValues(c, key) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, badRequest(CodeInvalidArgument, key+": id inválido '"+v+"'")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// queryDate interpreta YYYY-MM-DD en la zona horaria del servidor.
func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, badRequest(CodeInvalidArgument, key+": se espera el formato YYYY-MM-DD")
	}
	return &t, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badRequest(CodeInvalidArgument, key+": se espera true o false")
	}
	return b, nil
}

func documentFilter(c *fiber.Ctx) (repository.DocumentFilter, error) {
	var f repository.DocumentFilter
	var err error
	if f.DateFrom, err = queryDate(c, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(c, "date_to"); err != nil {
		return f, err
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return f, badRequest(CodeInvalidArgument, "date_from no puede ser posterior a date_to")
	}
	f.Numbers = queryValues(c, "numbers")
	if f.ResourceIDs, err = queryIDs(c, "resource_ids"); err != nil {
		return f, err
	}
	if f.UnitIDs, err = queryIDs(c, "unit_ids"); err != nil {
		return f, err
	}
	return f, nil
}

func balanceFilter(c *fiber.Ctx) (repository.BalanceFilter, error) {
	var f repository.BalanceFilter
	var err error
	if f.ResourceIDs, err = queryIDs(c, "resource_ids"); err != nil {
		return f, err
	}
	if f.UnitIDs, err = queryIDs(c, "unit_ids"); err != nil {
		return f, err
	}
	return f, nil
}
