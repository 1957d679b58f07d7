package service

import (
	"context"
	"sort"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/repository"
)

// topPopularItems is the cut for the popularity rollup.
const topPopularItems = 5

// BuildSummary aggregates the whole ledger: revenue, fines, amounts
// still due, balance collected beyond advances, a payment timeline,
// item popularity and income per checkout month.
func BuildSummary(rentals []domain.Rental, items []domain.Item, customers []domain.Customer) *domain.ReportSummary {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		itemNames[it.ID] = it.Name
	}

	sum := &domain.ReportSummary{}
	popularity := make(map[string]int)
	monthly := make(map[string]float64)

	for _, rt := range rentals {
		sum.TotalRevenue += rt.TotalAmount
		sum.TotalFines += rt.FineAmount
		if b := rt.Balance(); b > 0 {
			sum.TotalOutstanding += b
		}
		if rt.PaidAmount > rt.AdvancePayment {
			sum.BalanceCollected += rt.PaidAmount - rt.AdvancePayment
		}

		name := names[rt.CustomerID]
		if name == "" {
			name = "N/A"
		}
		for _, p := range rt.PaymentHistory {
			sum.RecentPayments = append(sum.RecentPayments, domain.PaymentRecord{
				Date:         p.Date,
				Amount:       p.Amount,
				RentalID:     rt.ID,
				CustomerName: name,
			})
		}

		for _, l := range rt.Lines {
			popularity[l.ItemID] += l.Quantity
		}
		monthly[rt.CheckoutDate.Format("2006-01")] += rt.TotalAmount
	}

	sort.Slice(sum.RecentPayments, func(i, j int) bool {
		return sum.RecentPayments[i].Date.After(sum.RecentPayments[j].Date)
	})

	for id, count := range popularity {
		name := itemNames[id]
		if name == "" {
			name = "Unknown"
		}
		sum.PopularItems = append(sum.PopularItems, domain.PopularItem{ItemID: id, Name: name, Count: count})
	}
	sort.Slice(sum.PopularItems, func(i, j int) bool {
		if sum.PopularItems[i].Count != sum.PopularItems[j].Count {
			return sum.PopularItems[i].Count > sum.PopularItems[j].Count
		}
		return sum.PopularItems[i].Name < sum.PopularItems[j].Name
	})
	if len(sum.PopularItems) > topPopularItems {
		sum.PopularItems = sum.PopularItems[:topPopularItems]
	}

	for month, income := range monthly {
		sum.MonthlyIncome = append(sum.MonthlyIncome, domain.MonthlyIncome{Month: month, Income: income})
	}
	sort.Slice(sum.MonthlyIncome, func(i, j int) bool {
		return sum.MonthlyIncome[i].Month < sum.MonthlyIncome[j].Month
	})

	return sum
}

// BuildCustomerStatement lists every rental for one customer with
// per-rental totals and lifetime sums.
func BuildCustomerStatement(customer *domain.Customer, rentals []domain.Rental) *domain.CustomerStatement {
	st := &domain.CustomerStatement{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
	}
	for _, rt := range rentals {
		cost := rt.TotalCost()
		st.Rentals = append(st.Rentals, domain.StatementEntry{
			RentalID:     rt.ID,
			CheckoutDate: rt.CheckoutDate,
			Status:       rt.Status,
			TotalCost:    cost,
			Paid:         rt.PaidAmount,
			Balance:      rt.Balance(),
		})
		st.LifetimeCost += cost
		st.LifetimePaid += rt.PaidAmount
	}
	st.Balance = st.LifetimeCost - st.LifetimePaid
	sort.Slice(st.Rentals, func(i, j int) bool {
		return st.Rentals[i].CheckoutDate.After(st.Rentals[j].CheckoutDate)
	})
	return st
}

type reportService struct {
	rentalRepo   repository.RentalRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
}

func NewReportService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
) ReportService {
	return &reportService{
		rentalRepo:   rentalRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
	}
}

func (s *reportService) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	rentals, err := s.rentalRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSummary(rentals, items, customers), nil
}

func (s *reportService) CustomerStatement(ctx context.Context, customerID string) (*domain.CustomerStatement, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rentals, err := s.rentalRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return BuildCustomerStatement(customer, rentals), nil
}
