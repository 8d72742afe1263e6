package service

import (
	"context"
	"fmt"

	"stride-store/models"
	"stride-store/repository"
)

// In-memory fakes behind the repository interfaces.

type fakeUserRepo struct {
	users map[string]*models.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrEmailTaken
	}
	user.CreatedAt = "2026-01-15T10:30:00Z"
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, exists := f.users[email]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) SetAdminPassword(ctx context.Context, id, passwordHash string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.IsAdmin = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeOrderRepo struct {
	orders map[string]*models.Order // keyed by order number
	lines  map[string][]models.OrderLine
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*models.Order{},
		lines:  map[string][]models.OrderLine{},
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.Order, error) {
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = "2026-01-15T10:30:00Z"
	f.orders[order.OrderNumber] = order
	f.lines[order.OrderNumber] = lines
	return order, nil
}

func (f *fakeOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.OrderResponse, error) {
	o, exists := f.orders[orderNumber]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return &models.OrderResponse{Order: *o, Lines: f.lines[orderNumber]}, nil
}

func (f *fakeOrderRepo) GetByPaymentSession(ctx context.Context, sessionID string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.PaymentSessionID == sessionID {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, orderNumber string) error {
	o, exists := f.orders[orderNumber]
	if !exists {
		return repository.ErrNotFound
	}
	o.Status = models.OrderStatusPaid
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
	byDrive  map[string]bool
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*models.Product{},
		byDrive:  map[string]bool{},
	}
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, exists := f.products[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Filter(ctx context.Context, params repository.ProductFilterParams) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if p.Status == models.ProductStatusPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		f.nextID++
		p.ID = fmt.Sprintf("p-%d", f.nextID)
	}
	if p.Status == "" {
		p.Status = models.ProductStatusPublished
	}
	f.products[p.ID] = p
	if p.DriveFileID != "" {
		f.byDrive[p.DriveFileID] = true
	}
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	p, exists := f.products[id]
	if !exists {
		return nil, repository.ErrNotFound
	}
	p.Name = req.Name
	p.Brand = req.Brand
	p.PriceCents = req.PriceCents
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, exists := f.products[id]; !exists {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	return f.byDrive[driveFileID], nil
}

func (f *fakeProductRepo) InsertPending(ctx context.Context, p *models.Product) error {
	p.Status = models.ProductStatusPending
	return f.Create(ctx, p)
}

func (f *fakeProductRepo) ListPending(ctx context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if p.Status == models.ProductStatusPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Publish(ctx context.Context, id string) (*models.Product, error) {
	p, exists := f.products[id]
	if !exists || p.Status != models.ProductStatusPending || p.PriceCents <= 0 {
		return nil, repository.ErrNotFound
	}
	p.Status = models.ProductStatusPublished
	return p, nil
}

type fakeDrive struct {
	images   []DriveImage
	listErr  error
	download map[string][]byte
}

func (f *fakeDrive) ListFolderImages(folderID string) ([]DriveImage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.images, nil
}

func (f *fakeDrive) DownloadImage(fileID string) ([]byte, error) {
	data, exists := f.download[fileID]
	if !exists {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return data, nil
}

type fakeGateway struct {
	created  []*CheckoutSessionRequest
	sessions map[string]*CheckoutSession
	err      error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*CheckoutSession{}}
}

func (f *fakeGateway) CreateSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	id := fmt.Sprintf("cs_%d", len(f.created))
	session := &CheckoutSession{
		ID:            id,
		URL:           "https://pay.example.com/session/" + id,
		PaymentStatus: "unpaid",
		Metadata:      req.Metadata,
	}
	for _, li := range req.LineItems {
		session.AmountTotalCents += li.UnitAmountCents * int64(li.Quantity)
	}
	f.sessions[id] = session
	return session, nil
}

func (f *fakeGateway) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	session, exists := f.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return session, nil
}
