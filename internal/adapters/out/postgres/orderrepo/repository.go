package orderrepo

import (
	"context"
	"errors"
	"time"

	"bakery/internal/core/domain/model/order"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func sortedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// fullGraph loads everything the aggregate owns plus its references.
func fullGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("PickupLocation").
		Preload("Items", sortedByPosition).
		Preload("Items.Product").
		Preload("History", sortedByPosition).
		Preload("History.CreatedBy")
}

// briefGraph loads what the paged order board needs.
func briefGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("PickupLocation")
}

// FindByID retrieves one order with its full graph.
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := fullGraph(r.db.WithContext(ctx)).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Save persists the aggregate and returns it reloaded with fresh ids and
// versions. New orders are inserted with their whole graph; existing orders
// are updated under the aggregate version guard.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	var id int64
	var err error
	if o.IsNew() {
		id, err = r.create(ctx, o)
	} else {
		id, err = r.update(ctx, o)
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *GormOrderRepository) create(ctx context.Context, o *order.Order) (int64, error) {
	dto := fromDomain(o)
	err := r.db.WithContext(ctx).
		Omit("PickupLocation", "Items.Product", "History.CreatedBy").
		Create(&dto).Error
	if err != nil {
		return 0, err
	}
	return dto.ID, nil
}

func (r *GormOrderRepository) update(ctx context.Context, o *order.Order) (int64, error) {
	dto := fromDomain(o)
	tx := r.db.WithContext(ctx)

	result := tx.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"version":            dto.Version + 1,
			"due_date":           dto.DueDate,
			"due_time":           dto.DueTime,
			"state":              dto.State,
			"pickup_location_id": dto.PickupLocationID,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewConcurrentModificationError("order", dto.ID, dto.Version)
	}

	if dto.Customer != nil {
		err := tx.Model(&CustomerDTO{}).
			Where("id = ?", dto.Customer.ID).
			Updates(map[string]any{
				"version":      dto.Customer.Version + 1,
				"full_name":    dto.Customer.FullName,
				"phone_number": dto.Customer.PhoneNumber,
				"details":      dto.Customer.Details,
			}).Error
		if err != nil {
			return 0, err
		}
	}

	// the item list is replaced wholesale
	if err := tx.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return 0, err
	}
	if len(dto.Items) > 0 {
		items := make([]ItemDTO, len(dto.Items))
		for i, item := range dto.Items {
			item.ID = 0
			item.Version = 0
			items[i] = item
		}
		if err := tx.Omit("Product").Create(&items).Error; err != nil {
			return 0, err
		}
	}

	// the history log is append-only, only unsaved entries are inserted
	var newEntries []HistoryDTO
	for _, entry := range dto.History {
		if entry.ID == 0 {
			newEntries = append(newEntries, entry)
		}
	}
	if len(newEntries) > 0 {
		if err := tx.Omit("CreatedBy").Create(&newEntries).Error; err != nil {
			return 0, err
		}
	}

	return dto.ID, nil
}

// Count returns the total number of orders.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&count).Error
	return count, err
}

// FindAll returns one page of orders with the brief graph.
func (r *GormOrderRepository) FindAll(ctx context.Context, page ports.Page) ([]*order.Order, error) {
	return r.findPage(r.db.WithContext(ctx), page)
}

// FindByCustomerName returns a page of orders whose customer full name
// contains the filter text, case-insensitively.
func (r *GormOrderRepository) FindByCustomerName(ctx context.Context, name string, page ports.Page) ([]*order.Order, error) {
	return r.findPage(r.byCustomerName(ctx, name), page)
}

// FindByDueDateAfter returns a page of orders due strictly after the date.
func (r *GormOrderRepository) FindByDueDateAfter(ctx context.Context, dueDate time.Time, page ports.Page) ([]*order.Order, error) {
	db := r.db.WithContext(ctx).Where("due_date > ?", dueDate)
	return r.findPage(db, page)
}

// FindByCustomerNameAndDueDateAfter combines both filters.
func (r *GormOrderRepository) FindByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time, page ports.Page) ([]*order.Order, error) {
	db := r.byCustomerName(ctx, name).Where("due_date > ?", dueDate)
	return r.findPage(db, page)
}

// CountByCustomerName counts under the same rule as FindByCustomerName.
func (r *GormOrderRepository) CountByCustomerName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.byCustomerName(ctx, name).Model(&OrderDTO{}).Count(&count).Error
	return count, err
}

// CountByDueDateAfter counts under the same rule as FindByDueDateAfter.
func (r *GormOrderRepository) CountByDueDateAfter(ctx context.Context, dueDate time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("due_date > ?", dueDate).
		Count(&count).Error
	return count, err
}

// CountByCustomerNameAndDueDateAfter counts under both filters.
func (r *GormOrderRepository) CountByCustomerNameAndDueDateAfter(ctx context.Context, name string, dueDate time.Time) (int64, error) {
	var count int64
	err := r.byCustomerName(ctx, name).Model(&OrderDTO{}).
		Where("due_date > ?", dueDate).
		Count(&count).Error
	return count, err
}

// FindSummariesByDueDateOnOrAfter returns summaries of every order due on
// the date or later, items and products included, history excluded.
func (r *GormOrderRepository) FindSummariesByDueDateOnOrAfter(ctx context.Context, dueDate time.Time) ([]*order.Summary, error) {
	var dtos []OrderDTO
	err := briefGraph(r.db.WithContext(ctx)).
		Preload("Items", sortedByPosition).
		Preload("Items.Product").
		Where("due_date >= ?", dueDate).
		Order("due_date, due_time, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*order.Summary, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &order.Summary{
			ID:             o.ID(),
			State:          o.State(),
			Customer:       o.Customer(),
			Items:          o.Items(),
			DueDate:        o.DueDate(),
			DueTime:        o.DueTime(),
			PickupLocation: o.PickupLocation(),
		})
	}
	return summaries, nil
}

// CountByDueDate counts orders due exactly on the date.
func (r *GormOrderRepository) CountByDueDate(ctx context.Context, dueDate time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("due_date = ?", dueDate).
		Count(&count).Error
	return count, err
}

// CountByDueDateAndStateIn counts orders due on the date in one of the
// given states.
func (r *GormOrderRepository) CountByDueDateAndStateIn(ctx context.Context, dueDate time.Time, states []order.State) (int64, error) {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("due_date = ? AND state IN ?", dueDate, names).
		Count(&count).Error
	return count, err
}

// CountByState counts orders in the given state.
func (r *GormOrderRepository) CountByState(ctx context.Context, state order.State) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("state = ?", state.String()).
		Count(&count).Error
	return count, err
}

// CountPerDay groups delivered orders by due date within [from, to).
func (r *GormOrderRepository) CountPerDay(ctx context.Context, from, to time.Time) ([]ports.DayCount, error) {
	var rows []struct {
		Date  time.Time
		Count int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT due_date AS date, COUNT(*) AS count
		FROM orders
		WHERE state = ? AND due_date >= ? AND due_date < ?
		GROUP BY due_date
		ORDER BY due_date`,
		order.Delivered.String(), from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]ports.DayCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.DayCount{Date: row.Date, Count: row.Count})
	}
	return counts, nil
}

// CountPerMonth groups delivered orders by due month within [from, to).
func (r *GormOrderRepository) CountPerMonth(ctx context.Context, from, to time.Time) ([]ports.MonthCount, error) {
	var rows []struct {
		Year  int
		Month int
		Count int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM due_date)::int AS year,
		       EXTRACT(MONTH FROM due_date)::int AS month,
		       COUNT(*) AS count
		FROM orders
		WHERE state = ? AND due_date >= ? AND due_date < ?
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		order.Delivered.String(), from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]ports.MonthCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.MonthCount{Year: row.Year, Month: row.Month, Count: row.Count})
	}
	return counts, nil
}

// SumSalesPerMonth sums the value of delivered orders per month within
// [from, to), in cents.
func (r *GormOrderRepository) SumSalesPerMonth(ctx context.Context, from, to time.Time) ([]ports.MonthlySales, error) {
	var rows []struct {
		Year  int
		Month int
		Total int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM o.due_date)::int AS year,
		       EXTRACT(MONTH FROM o.due_date)::int AS month,
		       COALESCE(SUM(oi.quantity * p.price), 0)::bigint AS total
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE o.state = ? AND o.due_date >= ? AND o.due_date < ?
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		order.Delivered.String(), from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sales := make([]ports.MonthlySales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, ports.MonthlySales{Year: row.Year, Month: row.Month, Total: row.Total})
	}
	return sales, nil
}

// CountPerProduct sums delivered item quantities per product for orders due
// in the given month, ordered by product id.
func (r *GormOrderRepository) CountPerProduct(ctx context.Context, year, month int) ([]ports.ProductCount, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var rows []struct {
		ID       int64
		Version  int64
		Name     string
		Price    int
		Quantity int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.version, p.name, p.price, SUM(oi.quantity)::int AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.state = ? AND o.due_date >= ? AND o.due_date < ?
		GROUP BY p.id, p.version, p.name, p.price
		ORDER BY p.id`,
		order.Delivered.String(), from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]ports.ProductCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.ProductCount{
			Product:  product.Restore(row.ID, row.Version, row.Name, row.Price),
			Quantity: row.Quantity,
		})
	}
	return counts, nil
}

func (r *GormOrderRepository) byCustomerName(ctx context.Context, name string) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.full_name ILIKE ?", "%"+name+"%")
}

func (r *GormOrderRepository) findPage(db *gorm.DB, page ports.Page) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := briefGraph(db).
		Order("orders.due_date, orders.due_time, orders.id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
