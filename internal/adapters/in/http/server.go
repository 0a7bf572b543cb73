package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bakery/internal/core/application/services"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ActingUserHeader identifies the staff account performing the request.
// Authentication itself happens upstream; the API trusts this header.
const ActingUserHeader = "X-Acting-User"

// Server exposes the application services over REST. It translates HTTP
// payloads into service calls and domain errors into HTTP statuses.
type Server struct {
	products  *services.ProductService
	users     *services.UserService
	locations *services.PickupLocationService
	orders    *services.OrderService
	dashboard *services.DashboardService
}

// NewServer creates an HTTP server on top of the application services.
func NewServer(
	products *services.ProductService,
	users *services.UserService,
	locations *services.PickupLocationService,
	orders *services.OrderService,
	dashboard *services.DashboardService,
) *Server {
	return &Server{
		products:  products,
		users:     users,
		locations: locations,
		orders:    orders,
		dashboard: dashboard,
	}
}

// NewRouter builds an echo instance with the standard middleware and every
// route registered.
func NewRouter(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	s.RegisterRoutes(e)
	return e
}

// RegisterRoutes attaches every endpoint to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.GET("/products", s.GetProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.GET("/users", s.GetUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUser)
	api.PUT("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	api.GET("/pickup-locations", s.GetPickupLocations)
	api.POST("/pickup-locations", s.CreatePickupLocation)
	api.GET("/pickup-locations/default", s.GetDefaultPickupLocation)
	api.GET("/pickup-locations/:id", s.GetPickupLocation)
	api.PUT("/pickup-locations/:id", s.UpdatePickupLocation)
	api.DELETE("/pickup-locations/:id", s.DeletePickupLocation)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/starting-today", s.GetOrdersStartingToday)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.PUT("/orders/:id/state", s.UpdateOrderState)
	api.POST("/orders/:id/comments", s.AddOrderComment)

	api.GET("/dashboard", s.GetDashboard)
	api.GET("/dashboard/delivery-stats", s.GetDeliveryStats)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetProducts handles GET /api/v1/products - lists products filtered by name.
func (s *Server) GetProducts(ctx echo.Context) error {
	filter := ctx.QueryParam("filter")
	page := pageFromQuery(ctx)

	reqCtx := ctx.Request().Context()
	products, err := s.products.FindAnyMatching(reqCtx, filter, page)
	if err != nil {
		return writeError(ctx, err)
	}
	total, err := s.products.CountAnyMatching(reqCtx, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListResponse(products, total, toProductResponse))
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ProductRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	p := product.New()
	p.SetName(req.Name)
	p.SetPrice(req.Price)

	saved, err := s.products.Save(ctx.Request().Context(), actor, p)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toProductResponse(saved))
}

// GetProduct handles GET /api/v1/products/:id.
func (s *Server) GetProduct(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.products.Load(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProductResponse(p))
}

// UpdateProduct handles PUT /api/v1/products/:id. The request carries the
// version the client last saw; a stale version is rejected with 409.
func (s *Server) UpdateProduct(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ProductRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	p := product.Restore(id, req.Version, req.Name, req.Price)
	saved, err := s.products.Save(ctx.Request().Context(), actor, p)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toProductResponse(saved))
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (s *Server) DeleteProduct(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.products.Delete(ctx.Request().Context(), actor, id); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetUsers handles GET /api/v1/users - lists accounts filtered across email,
// name and role.
func (s *Server) GetUsers(ctx echo.Context) error {
	filter := ctx.QueryParam("filter")
	page := pageFromQuery(ctx)

	reqCtx := ctx.Request().Context()
	users, err := s.users.FindAnyMatching(reqCtx, filter, page)
	if err != nil {
		return writeError(ctx, err)
	}
	total, err := s.users.CountAnyMatching(reqCtx, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListResponse(users, total, toUserResponse))
}

// CreateUser handles POST /api/v1/users.
func (s *Server) CreateUser(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UserRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	u := user.New()
	u.SetEmail(req.Email)
	u.SetPasswordHash(req.PasswordHash)
	u.SetFirstName(req.FirstName)
	u.SetLastName(req.LastName)
	u.SetRole(req.Role)
	u.SetLocked(req.Locked)

	saved, err := s.users.Save(ctx.Request().Context(), actor, u)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toUserResponse(saved))
}

// GetUser handles GET /api/v1/users/:id.
func (s *Server) GetUser(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	u, err := s.users.Load(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateUser handles PUT /api/v1/users/:id. An empty passwordHash keeps the
// stored hash.
func (s *Server) UpdateUser(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req UserRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	reqCtx := ctx.Request().Context()
	if req.PasswordHash == "" {
		stored, err := s.users.Load(reqCtx, id)
		if err != nil {
			return writeError(ctx, err)
		}
		req.PasswordHash = stored.PasswordHash()
	}

	u := user.Restore(id, req.Version, req.Email, req.PasswordHash, req.FirstName, req.LastName, req.Role, req.Locked)
	saved, err := s.users.Save(reqCtx, actor, u)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toUserResponse(saved))
}

// DeleteUser handles DELETE /api/v1/users/:id.
func (s *Server) DeleteUser(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.users.Delete(ctx.Request().Context(), actor, id); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetPickupLocations handles GET /api/v1/pickup-locations.
func (s *Server) GetPickupLocations(ctx echo.Context) error {
	filter := ctx.QueryParam("filter")
	page := pageFromQuery(ctx)

	reqCtx := ctx.Request().Context()
	locations, err := s.locations.FindAnyMatching(reqCtx, filter, page)
	if err != nil {
		return writeError(ctx, err)
	}
	total, err := s.locations.CountAnyMatching(reqCtx, filter)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListResponse(locations, total, toPickupLocationResponse))
}

// CreatePickupLocation handles POST /api/v1/pickup-locations.
func (s *Server) CreatePickupLocation(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PickupLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	l := pickup.New()
	l.SetName(req.Name)

	saved, err := s.locations.Save(ctx.Request().Context(), actor, l)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toPickupLocationResponse(saved))
}

// GetDefaultPickupLocation handles GET /api/v1/pickup-locations/default.
func (s *Server) GetDefaultPickupLocation(ctx echo.Context) error {
	l, err := s.locations.GetDefault(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPickupLocationResponse(l))
}

// GetPickupLocation handles GET /api/v1/pickup-locations/:id.
func (s *Server) GetPickupLocation(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	l, err := s.locations.Load(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPickupLocationResponse(l))
}

// UpdatePickupLocation handles PUT /api/v1/pickup-locations/:id.
func (s *Server) UpdatePickupLocation(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req PickupLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	l := pickup.Restore(id, req.Version, req.Name)
	saved, err := s.locations.Save(ctx.Request().Context(), actor, l)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPickupLocationResponse(saved))
}

// DeletePickupLocation handles DELETE /api/v1/pickup-locations/:id.
func (s *Server) DeletePickupLocation(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.locations.Delete(ctx.Request().Context(), actor, id); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders - lists orders filtered by customer
// name and, when after is given, by due date strictly after it.
func (s *Server) GetOrders(ctx echo.Context) error {
	filter := ctx.QueryParam("filter")
	page := pageFromQuery(ctx)

	var dueAfter time.Time
	if raw := ctx.QueryParam("after"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("after", err))
		}
		dueAfter = parsed
	}

	reqCtx := ctx.Request().Context()
	orders, err := s.orders.FindAnyMatchingAfterDueDate(reqCtx, filter, dueAfter, page)
	if err != nil {
		return writeError(ctx, err)
	}
	total, err := s.orders.CountAnyMatchingAfterDueDate(reqCtx, filter, dueAfter)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toListResponse(orders, total, toOrderResponse))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	return s.saveOrder(ctx, 0, http.StatusCreated)
}

// UpdateOrder handles PUT /api/v1/orders/:id. The item list is replaced with
// the request's; the history log keeps growing.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	return s.saveOrder(ctx, id, http.StatusOK)
}

func (s *Server) saveOrder(ctx echo.Context, id int64, okStatus int) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req OrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	fill, err := s.orderFiller(ctx.Request().Context(), req)
	if err != nil {
		return writeError(ctx, err)
	}

	saved, err := s.orders.SaveOrder(ctx.Request().Context(), actor, id, fill)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(okStatus, toOrderResponse(saved))
}

// orderFiller parses the request payload and resolves the referenced pickup
// location and products up front, then returns the closure that copies the
// result onto the order.
func (s *Server) orderFiller(
	reqCtx context.Context,
	req OrderRequest,
) (func(actor *user.User, o *order.Order), error) {
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("dueDate", err)
	}
	dueTime, err := kernel.ParseTimeOfDay(req.DueTime)
	if err != nil {
		return nil, err
	}

	var state order.State
	if req.State != "" {
		if state, err = order.StateFromString(req.State); err != nil {
			return nil, err
		}
	}

	var location *pickup.Location
	if req.PickupLocationID != 0 {
		if location, err = s.locations.Load(reqCtx, req.PickupLocationID); err != nil {
			return nil, err
		}
	}

	items := make([]*order.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		p, err := s.products.Load(reqCtx, itemReq.ProductID)
		if err != nil {
			return nil, err
		}
		item := order.NewItem()
		item.SetProduct(p)
		item.SetQuantity(itemReq.Quantity)
		item.SetComment(itemReq.Comment)
		items = append(items, item)
	}

	return func(actor *user.User, o *order.Order) {
		o.SetDueDate(dueDate)
		o.SetDueTime(dueTime)
		o.SetPickupLocation(location)
		o.SetItems(items)

		customer := o.Customer()
		if customer == nil {
			customer = order.NewCustomer()
			o.SetCustomer(customer)
		}
		customer.SetFullName(req.Customer.FullName)
		customer.SetPhoneNumber(req.Customer.PhoneNumber)
		customer.SetDetails(req.Customer.Details)

		if state.IsDefined() {
			o.ChangeState(actor, state)
		}
	}, nil
}

// UpdateOrderState handles PUT /api/v1/orders/:id/state - moves the order
// to the given state, recording the transition in its history.
func (s *Server) UpdateOrderState(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req StateRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	state, err := order.StateFromString(req.State)
	if err != nil {
		return writeError(ctx, err)
	}

	saved, err := s.orders.SaveOrder(ctx.Request().Context(), actor, id, func(actor *user.User, o *order.Order) {
		o.ChangeState(actor, state)
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(saved))
}

// GetOrdersStartingToday handles GET /api/v1/orders/starting-today - the
// order board listing of everything due today or later.
func (s *Server) GetOrdersStartingToday(ctx echo.Context) error {
	summaries, err := s.orders.FindAnyMatchingStartingToday(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, toOrderSummaryResponse(summary))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - the full order graph including
// its history.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.orders.Load(ctx.Request().Context(), id)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// AddOrderComment handles POST /api/v1/orders/:id/comments.
func (s *Server) AddOrderComment(ctx echo.Context) error {
	actor, err := s.actingUser(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	id, err := idParam(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CommentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	o, err := s.orders.AddComment(ctx.Request().Context(), actor, id, req.Message)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(o))
}

// GetDashboard handles GET /api/v1/dashboard - the aggregated dashboard for
// the given month and year, defaulting to the current ones.
func (s *Server) GetDashboard(ctx echo.Context) error {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	var err error
	if raw := ctx.QueryParam("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("month", err))
		}
	}
	if raw := ctx.QueryParam("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("year", err))
		}
	}

	data, err := s.dashboard.GetDashboardData(ctx.Request().Context(), month, year)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDashboardResponse(data))
}

// GetDeliveryStats handles GET /api/v1/dashboard/delivery-stats.
func (s *Server) GetDeliveryStats(ctx echo.Context) error {
	stats, err := s.dashboard.GetDeliveryStats(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDeliveryStatsResponse(stats))
}

// actingUser resolves the staff account named by the X-Acting-User header.
func (s *Server) actingUser(ctx echo.Context) (*user.User, error) {
	email := ctx.Request().Header.Get(ActingUserHeader)
	if email == "" {
		return nil, errs.NewValueIsRequiredError(ActingUserHeader + " header")
	}
	return s.users.FindByEmail(ctx.Request().Context(), email)
}

// pageFromQuery reads the page and size query parameters, falling back to
// the first page of the default size.
func pageFromQuery(ctx echo.Context) ports.Page {
	number, _ := strconv.Atoi(ctx.QueryParam("page"))
	size, _ := strconv.Atoi(ctx.QueryParam("size"))
	return ports.PageOf(number, size)
}

// idParam reads the :id path parameter.
func idParam(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

// writeError maps a domain error onto its HTTP status and writes the JSON
// error envelope.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValidationFailed),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrPermissionDenied):
		status = http.StatusForbidden
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
