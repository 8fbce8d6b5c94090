package repository

import (
	"testing"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPartOrderRepositoryTest(t *testing.T) (PartOrderRepository, *model.User, *model.Part, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := NewPartOrderRepository(testDB)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	company := &model.Company{Name: "Sunrise Motors", Country: "Germany"}
	testDB.Create(company)

	part := &model.Part{
		CompanyID: company.ID,
		Name:      "Brake Pad Set",
		Category:  "brakes",
		Price:     150,
	}
	testDB.Create(part)

	return orderRepo, user, part, testDB
}

func seedOrder(t *testing.T, repo PartOrderRepository, userID, partID uint, status model.OrderStatus, amount float64) *model.PartOrder {
	order := &model.PartOrder{
		UserID:        userID,
		TotalAmount:   amount,
		Status:        status,
		PaymentMethod: model.PaymentCard,
		Items: []model.PartOrderItem{
			{PartID: partID, Quantity: 1, Price: amount},
		},
	}
	require.NoError(t, repo.Create(nil, order))
	return order
}

func TestPartOrderRepository_Create_WithItems(t *testing.T) {
	orderRepo, user, part, _ := setupPartOrderRepositoryTest(t)

	order := seedOrder(t, orderRepo, user.ID, part.ID, model.OrderStatusPending, 150)

	found, err := orderRepo.FindByID(order.ID)
	assert.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, part.ID, found.Items[0].PartID)
	assert.Equal(t, "Brake Pad Set", found.Items[0].Part.Name)
}

func TestPartOrderRepository_FindByUserID(t *testing.T) {
	orderRepo, user, part, testDB := setupPartOrderRepositoryTest(t)

	other := &model.User{
		Username:     "other",
		Email:        "other@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	seedOrder(t, orderRepo, user.ID, part.ID, model.OrderStatusPending, 150)
	seedOrder(t, orderRepo, other.ID, part.ID, model.OrderStatusPending, 150)

	orders, err := orderRepo.FindByUserID(user.ID)
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, user.ID, orders[0].UserID)
}

func TestPartOrderRepository_FindItemsByCompanyID(t *testing.T) {
	orderRepo, user, part, testDB := setupPartOrderRepositoryTest(t)

	otherCompany := &model.Company{Name: "Moonlight Autos", Country: "France"}
	testDB.Create(otherCompany)
	otherPart := &model.Part{
		CompanyID: otherCompany.ID,
		Name:      "Air Filter",
		Category:  "engine",
		Price:     25,
	}
	testDB.Create(otherPart)

	order := &model.PartOrder{
		UserID:        user.ID,
		TotalAmount:   175,
		Status:        model.OrderStatusPaid,
		PaymentMethod: model.PaymentCard,
		Items: []model.PartOrderItem{
			{PartID: part.ID, Quantity: 1, Price: 150},
			{PartID: otherPart.ID, Quantity: 1, Price: 25},
		},
	}
	require.NoError(t, orderRepo.Create(nil, order))

	items, err := orderRepo.FindItemsByCompanyID(part.CompanyID)
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, part.ID, items[0].PartID)
	assert.Equal(t, 150.0, items[0].Price)
}

func TestPartOrderRepository_SumRevenue_SkipsCancelled(t *testing.T) {
	orderRepo, user, part, _ := setupPartOrderRepositoryTest(t)

	seedOrder(t, orderRepo, user.ID, part.ID, model.OrderStatusPaid, 150)
	seedOrder(t, orderRepo, user.ID, part.ID, model.OrderStatusDelivered, 300)
	seedOrder(t, orderRepo, user.ID, part.ID, model.OrderStatusCancelled, 999)

	revenue, err := orderRepo.SumRevenue()
	assert.NoError(t, err)
	assert.Equal(t, 450.0, revenue)

	count, err := orderRepo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
