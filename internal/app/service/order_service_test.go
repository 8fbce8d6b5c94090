package service

import (
	"testing"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, CartService, *model.User, *model.Part, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	partRepo := repository.NewPartRepository(testDB)
	orderRepo := repository.NewPartOrderRepository(testDB)
	notificationRepo := repository.NewNotificationRepository(testDB)

	notifications := NewNotificationService(notificationRepo, nil)
	cartService := NewCartService(testDB, cartRepo, partRepo)
	orderService := NewOrderService(testDB, orderRepo, cartRepo, notifications)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	company := &model.Company{
		Name:    "Test Motors",
		Country: "Germany",
	}
	testDB.Create(company)

	part := &model.Part{
		CompanyID: company.ID,
		Name:      "Oil Filter",
		Category:  "engine",
		Price:     40,
		Stock:     20,
	}
	testDB.Create(part)

	return orderService, cartService, user, part, testDB
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orderService, _, user, _, _ := setupOrderServiceTest(t)

	_, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestOrderService_Checkout_Success(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	added, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	require.Equal(t, 2, added.Quantity)

	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 80.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 40.0, order.Items[0].Price)

	// Cart is cleared in the same transaction
	cart, _ := cartService.GetCart(user.ID)
	assert.Len(t, cart.Items, 0)
}

func TestOrderService_Checkout_FreezesPrices(t *testing.T) {
	orderService, cartService, user, part, testDB := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)

	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCash,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	// Raising the part price after checkout must not change what was charged
	testDB.Model(part).Update("price", 999)

	reloaded, err := orderService.GetOrder(user.ID, order.ID)
	assert.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 40.0, reloaded.Items[0].Price)
	assert.Equal(t, 40.0, reloaded.TotalAmount)
}

func TestOrderService_GetOrder_WrongUser(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	_, err = orderService.GetOrder(user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_Pay_Success(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	paid, err := orderService.Pay(user.ID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaymentDate)
	assert.NotEmpty(t, paid.TransactionID)
}

func TestOrderService_Pay_Twice(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	_, err = orderService.Pay(user.ID, order.ID)
	require.NoError(t, err)

	_, err = orderService.Pay(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_Cancel_AfterDelivery(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	// Walk the full fulfilment chain
	for _, status := range []model.OrderStatus{
		model.OrderStatusPaid,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	} {
		_, err = orderService.UpdateStatus(order.ID, status)
		require.NoError(t, err)
	}

	_, err = orderService.Cancel(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_SkippingStep(t *testing.T) {
	orderService, cartService, user, part, _ := setupOrderServiceTest(t)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	order, err := orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	// pending -> shipped skips paid and processing
	_, err = orderService.UpdateStatus(order.ID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderService_GetCompanySoldItems(t *testing.T) {
	orderService, cartService, user, part, testDB := setupOrderServiceTest(t)

	// Second company with its own part in the same order
	otherCompany := &model.Company{Name: "Other Motors", Country: "France"}
	testDB.Create(otherCompany)
	otherPart := &model.Part{
		CompanyID: otherCompany.ID,
		Name:      "Air Filter",
		Category:  "engine",
		Price:     25,
	}
	testDB.Create(otherPart)

	_, err := cartService.AddToCart(user.ID, part.ID)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, otherPart.ID)
	require.NoError(t, err)

	_, err = orderService.Checkout(user.ID, CheckoutInput{
		PaymentMethod:   model.PaymentCard,
		ShippingAddress: "1 Main St",
	})
	require.NoError(t, err)

	// Each company only sees its own line items
	items, err := orderService.GetCompanySoldItems(part.CompanyID)
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, part.ID, items[0].PartID)

	otherItems, err := orderService.GetCompanySoldItems(otherCompany.ID)
	assert.NoError(t, err)
	require.Len(t, otherItems, 1)
	assert.Equal(t, otherPart.ID, otherItems[0].PartID)
}
