package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation failure", errs.NewValidationError("Order", errs.FieldViolation{Field: "dueDate", Message: "is required"}), http.StatusBadRequest},
		{"missing value", errs.NewValueIsRequiredError("comment"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("state"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("month", 13, 1, 12), http.StatusBadRequest},
		{"missing object", errs.NewObjectNotFoundError("order", 42), http.StatusNotFound},
		{"conflict", errs.NewConflictError("duplicate name"), http.StatusConflict},
		{"stale version", errs.NewConcurrentModificationError("order", 42, 3), http.StatusConflict},
		{"permission denied", errs.NewPermissionDeniedError("locked"), http.StatusForbidden},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := testContext(t, "/")

			require.NoError(t, writeError(ctx, tt.err))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestPageFromQuery(t *testing.T) {
	t.Run("explicit page and size are honored", func(t *testing.T) {
		ctx, _ := testContext(t, "/?page=2&size=5")
		assert.Equal(t, ports.PageOf(2, 5), pageFromQuery(ctx))
	})

	t.Run("missing parameters fall back to the first default page", func(t *testing.T) {
		ctx, _ := testContext(t, "/")
		page := pageFromQuery(ctx)
		assert.Equal(t, 0, page.Number)
		assert.Equal(t, ports.DefaultPageSize, page.Size)
	})

	t.Run("garbage parameters fall back to the first default page", func(t *testing.T) {
		ctx, _ := testContext(t, "/?page=abc&size=-3")
		page := pageFromQuery(ctx)
		assert.Equal(t, 0, page.Number)
		assert.Equal(t, ports.DefaultPageSize, page.Size)
	})
}

func TestIDParam(t *testing.T) {
	ctx, _ := testContext(t, "/")
	ctx.SetParamNames("id")
	ctx.SetParamValues("17")

	id, err := idParam(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	ctx.SetParamValues("seventeen")
	_, err = idParam(ctx)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewRouter_AppliesStandardMiddleware(t *testing.T) {
	router := NewRouter(NewServer(nil, nil, nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestToOrderResponse(t *testing.T) {
	baker := user.Restore(1, 0, "baker@example.com", "hash", "Heidi", "Carter", user.RoleBaker, false)
	croissant := product.Restore(3, 0, "Croissant", 350)
	dueTime, err := kernel.NewTimeOfDay(16, 0)
	require.NoError(t, err)

	o := order.NewOrder(baker)
	o.SetDueDate(time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC))
	o.SetDueTime(dueTime)
	o.SetPickupLocation(pickup.Restore(2, 0, "Store"))
	o.Customer().SetFullName("Greta Svensson")
	o.Customer().SetPhoneNumber("+46 555 123 456")
	item := order.NewItem()
	item.SetProduct(croissant)
	item.SetQuantity(2)
	o.SetItems([]*order.OrderItem{item})

	resp := toOrderResponse(o)

	assert.Equal(t, "NEW", resp.State)
	assert.Equal(t, "2026-04-20", resp.DueDate)
	assert.Equal(t, "16:00", resp.DueTime)
	require.NotNil(t, resp.PickupLocation)
	assert.Equal(t, "Store", resp.PickupLocation.Name)
	assert.Equal(t, "Greta Svensson", resp.Customer.FullName)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Croissant", resp.Items[0].ProductName)
	assert.Equal(t, 700, resp.Items[0].TotalPrice)
	assert.Equal(t, 700, resp.TotalPrice)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "Order placed", resp.History[0].Message)
	assert.Equal(t, "baker@example.com", resp.History[0].CreatedBy)
}
