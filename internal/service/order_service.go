package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gasflow-be/internal/dto"
	"gasflow-be/internal/entity"
	"gasflow-be/internal/model"
	"gasflow-be/internal/pkg/logger"
	"gasflow-be/internal/repository"
	"gasflow-be/internal/repository/specification"
	"gasflow-be/internal/repository/unitofwork"
	"gasflow-be/internal/websocket"

	"gasflow-be/pkg/events"
	pktNats "gasflow-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const deliveryFlatFee = 15000

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type IOrderService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
	ListMyOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error)
	GetOrder(ctx context.Context, orderId, callerId uuid.UUID, isAdmin bool) (*dto.OrderResponse, error)
	ListOrders(ctx context.Context, status string) ([]*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, orderId uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error)
	CancelOrder(ctx context.Context, orderId, userId uuid.UUID) error
	CreatePOSSale(ctx context.Context, adminId uuid.UUID, req *dto.POSSaleRequest) (*dto.OrderResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type orderService struct {
	uowFactory       unitofwork.RepositoryFactory
	notificationRepo repository.NotificationRepository
	deliveryService  IDeliveryService
	pusher           RealtimePusher
	eventPublisher   *pktNats.Publisher
	emailQueue       IPublisherService
	log              logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	notificationRepo repository.NotificationRepository,
	deliveryService IDeliveryService,
	pusher RealtimePusher,
	eventPublisher *pktNats.Publisher,
	emailQueue IPublisherService,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory:       uowFactory,
		notificationRepo: notificationRepo,
		deliveryService:  deliveryService,
		pusher:           pusher,
		eventPublisher:   eventPublisher,
		emailQueue:       emailQueue,
		log:              log,
	}
}

func (s *orderService) queueEmail(ctx context.Context, job dto.EmailJobMessage) {
	if s.emailQueue == nil || job.To == "" {
		return
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := s.emailQueue.Publish(ctx, payload); err != nil {
		s.log.Warn("order", "failed to queue email job", map[string]interface{}{"kind": job.Kind, "error": err.Error()})
	}
}

func (s *orderService) Checkout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, errors.New("invalid delivery date")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	cartItems, err := uow.CartRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	address, err := uow.AddressRepository().FindOne(ctx, specification.ByID{ID: req.AddressId}, specification.OwnedBy{UserID: userId})
	if err != nil || address == nil {
		return nil, errors.New("address not found")
	}

	// Order creation, stock decrements and cart clearing are one
	// transaction. The payment gateway call happens after commit.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	order := &entity.Order{
		Id:            uuid.New(),
		CustomerId:    userId,
		Status:        entity.OrderStatusPending,
		Source:        entity.OrderSourceOnline,
		PaymentStatus: entity.PaymentStatusPending,

		DeliveryName:    address.RecipientName,
		DeliveryPhone:   address.Phone,
		DeliveryAddress: formatAddressLine(address),

		DeliveryDate: &deliveryDate,
		DeliverySlot: &req.DeliverySlot,

		DeliveryFee: deliveryFlatFee,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	for _, item := range cartItems {
		if item.Product == nil {
			return nil, ErrProductNotFound
		}

		affected, err := uow.ProductRepository().DecrementStock(ctx, item.ProductId, item.Quantity)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInsufficientStock
		}

		order.Items = append(order.Items, entity.OrderItem{
			Id:          uuid.New(),
			OrderId:     order.Id,
			ProductId:   item.ProductId,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
		})
		order.Subtotal += item.Product.Price * float64(item.Quantity)
	}
	order.Total = order.Subtotal + order.DeliveryFee

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uow.CartRepository().Clear(ctx, userId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	user, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})

	paymentURL, paymentToken, midErr := s.createSnapTransaction(order, user, address)
	if midErr != nil {
		// The order stays pending-unpaid; the client can retry payment.
		s.log.Error("order", "midtrans transaction failed", map[string]interface{}{"order_id": order.Id, "error": midErr.Error()})
	} else {
		order.PaymentToken = &paymentToken
		order.PaymentURL = &paymentURL
		if err := uow.OrderRepository().SetPaymentDetails(ctx, order.Id, paymentToken, paymentURL); err != nil {
			s.log.Error("order", "failed to persist payment details", map[string]interface{}{"order_id": order.Id, "error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeOrderCreated,
			Data: map[string]interface{}{
				"order_id":    order.Id,
				"customer_id": userId,
				"total":       order.Total,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("order", "failed to publish ORDER_CREATED", map[string]interface{}{"error": err.Error()})
		}
	}

	if user != nil {
		s.queueEmail(ctx, dto.EmailJobMessage{
			Kind:    dto.EmailJobOrderConfirmation,
			To:      user.Email,
			OrderId: order.Id,
			Total:   order.Total,
		})
	}

	return &dto.CheckoutResponse{
		Order:      *toOrderResponse(order),
		PaymentURL: paymentURL,
	}, nil
}

func (s *orderService) createSnapTransaction(order *entity.Order, user *entity.User, address *entity.Address) (string, string, error) {
	var sClient snap.Client
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(serverKey, env)

	items := make([]midtrans.ItemDetails, 0, len(order.Items)+1)
	for _, it := range order.Items {
		items = append(items, midtrans.ItemDetails{
			ID:    it.ProductId.String(),
			Price: int64(it.UnitPrice),
			Qty:   int32(it.Quantity),
			Name:  it.ProductName,
		})
	}
	items = append(items, midtrans.ItemDetails{
		ID:    "delivery-fee",
		Price: int64(order.DeliveryFee),
		Qty:   1,
		Name:  "Delivery Fee",
	})

	customer := &midtrans.CustomerDetails{
		FName: order.DeliveryName,
		Phone: order.DeliveryPhone,
	}
	if user != nil {
		customer.Email = user.Email
	}

	postalCode := address.PostalCode
	if len(postalCode) > 5 {
		postalCode = postalCode[:5]
	}
	customer.ShipAddr = &midtrans.CustomerAddress{
		FName:       order.DeliveryName,
		Phone:       order.DeliveryPhone,
		Address:     address.Line1,
		City:        address.City,
		Postcode:    postalCode,
		CountryCode: "IDN",
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.Id.String(),
			GrossAmt: int64(order.Total),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/orders?payment=success", os.Getenv("FRONTEND_URL")),
		},
		CustomerDetail:  customer,
		Items:           &items,
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return "", "", fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return snapResp.RedirectURL, snapResp.Token, nil
}

func (s *orderService) HandleMidtransNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return fmt.Errorf("server configuration error")
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expectedSignature := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expectedSignature {
		s.log.Warn("order", "webhook signature mismatch", map[string]interface{}{"order_id": req.OrderId})
		return fmt.Errorf("invalid signature")
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return fmt.Errorf("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	var newPaymentStatus entity.PaymentStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		newPaymentStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newPaymentStatus = entity.PaymentStatusFailed
	case "pending":
		newPaymentStatus = entity.PaymentStatusPending
	default:
		s.log.Info("order", "ignoring webhook transaction status", map[string]interface{}{"status": req.TransactionStatus})
		return nil
	}

	if order.PaymentStatus == newPaymentStatus {
		return nil
	}

	if err := uow.OrderRepository().UpdatePayment(ctx, orderId, string(newPaymentStatus)); err != nil {
		return err
	}

	if newPaymentStatus == entity.PaymentStatusPaid && s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypePaymentSettled,
			Data: map[string]interface{}{
				"order_id":    order.Id,
				"customer_id": order.CustomerId,
				"total":       order.Total,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("order", "failed to publish PAYMENT_SETTLED", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}

func (s *orderService) ListMyOrders(ctx context.Context, userId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx, specification.ByCustomer{CustomerID: userId})
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderId, callerId uuid.UUID, isAdmin bool) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil || (!isAdmin && order.CustomerId != callerId) {
		return nil, ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, status string) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	orders, err := uow.OrderRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderId uuid.UUID, req *dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	newStatus := entity.OrderStatus(req.Status)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !entity.CanTransition(order.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	affected, err := uow.OrderRepository().UpdateStatus(ctx, orderId, string(newStatus))
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderNotFound
	}
	order.Status = newStatus

	if newStatus == entity.OrderStatusOutForDelivery {
		if _, err := s.deliveryService.EnsureRoute(ctx, orderId); err != nil {
			s.log.Warn("order", "failed to seed delivery route", map[string]interface{}{"order_id": orderId, "error": err.Error()})
		}
	}

	s.notifyStatusChange(ctx, order)

	if customer, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.CustomerId}); customer != nil {
		s.queueEmail(ctx, dto.EmailJobMessage{
			Kind:    dto.EmailJobOrderStatusUpdate,
			To:      customer.Email,
			OrderId: order.Id,
			Status:  string(order.Status),
		})
	}

	return toOrderResponse(order), nil
}

// notifyStatusChange persists the durable notification row, pushes the
// best-effort socket frame, and publishes the bus event. Push failure is
// invisible to the customer; the row survives it.
func (s *orderService) notifyStatusChange(ctx context.Context, order *entity.Order) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"order_id": order.Id,
		"status":   order.Status,
	})
	notification := &model.Notification{
		ID:       uuid.New(),
		UserID:   order.CustomerId,
		TypeCode: "ORDER_STATUS",
		Title:    "Order update",
		Message:  fmt.Sprintf("Your order is now %s", order.Status),
		Metadata: metadata,
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		s.log.Error("order", "failed to persist notification", map[string]interface{}{"order_id": order.Id, "error": err.Error()})
	}

	if s.pusher != nil {
		s.pusher.PushToUser(order.CustomerId, websocket.OrderStatusFrame(toOrderResponse(order)))
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeOrderStatusChanged,
			Data: map[string]interface{}{
				"order_id":    order.Id,
				"customer_id": order.CustomerId,
				"status":      string(order.Status),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("order", "failed to publish ORDER_STATUS_CHANGED", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *orderService) CancelOrder(ctx context.Context, orderId, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId}, specification.ByCustomer{CustomerID: userId})
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if !entity.CanTransition(order.Status, entity.OrderStatusCancelled) {
		return ErrInvalidTransition
	}

	affected, err := uow.OrderRepository().UpdateStatus(ctx, orderId, string(entity.OrderStatusCancelled))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *orderService) CreatePOSSale(ctx context.Context, adminId uuid.UUID, req *dto.POSSaleRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	customerId := adminId
	if req.CustomerId != nil {
		customerId = *req.CustomerId
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	receipt := fmt.Sprintf("POS-%s", time.Now().Format("20060102-150405"))
	order := &entity.Order{
		Id:            uuid.New(),
		CustomerId:    customerId,
		Status:        entity.OrderStatusDelivered,
		Source:        entity.OrderSourcePOS,
		PaymentStatus: entity.PaymentStatusPaid,
		ReceiptNumber: &receipt,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	for _, line := range req.Items {
		product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: line.ProductId})
		if err != nil || product == nil {
			return nil, ErrProductNotFound
		}

		affected, err := uow.ProductRepository().DecrementStock(ctx, line.ProductId, line.Quantity)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrInsufficientStock
		}

		order.Items = append(order.Items, entity.OrderItem{
			Id:          uuid.New(),
			OrderId:     order.Id,
			ProductId:   product.Id,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
		})
		order.Subtotal += product.Price * float64(line.Quantity)
	}
	order.Total = order.Subtotal

	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toOrderResponse(order), nil
}

func (s *orderService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	customers, err := uow.UserRepository().Count(ctx, specification.ByRole{Role: string(entity.UserRoleCustomer)})
	if err != nil {
		return nil, err
	}

	totalOrders, err := uow.OrderRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	for _, st := range []entity.OrderStatus{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusOutForDelivery,
		entity.OrderStatusDelivered,
		entity.OrderStatusCancelled,
	} {
		n, err := uow.OrderRepository().Count(ctx, specification.ByStatus{Status: string(st)})
		if err != nil {
			return nil, err
		}
		byStatus[string(st)] = n
	}

	revenue, err := uow.OrderRepository().SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalCustomers: customers,
		TotalOrders:    totalOrders,
		OrdersByStatus: byStatus,
		Revenue:        revenue,
	}, nil
}

func formatAddressLine(a *entity.Address) string {
	line := a.Line1
	if a.Line2 != nil && *a.Line2 != "" {
		line += ", " + *a.Line2
	}
	line += ", " + a.City
	if a.PostalCode != "" {
		line += " " + a.PostalCode
	}
	return line
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductId:   it.ProductId,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return &dto.OrderResponse{
		Id:              o.Id,
		CustomerId:      o.CustomerId,
		Status:          string(o.Status),
		Source:          string(o.Source),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentURL:      o.PaymentURL,
		ReceiptNumber:   o.ReceiptNumber,
		DeliveryName:    o.DeliveryName,
		DeliveryPhone:   o.DeliveryPhone,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		DeliverySlot:    o.DeliverySlot,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []*dto.OrderResponse {
	res := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, toOrderResponse(o))
	}
	return res
}
