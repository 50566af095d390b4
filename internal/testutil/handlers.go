package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"monoshop/internal/domain"

	"github.com/go-chi/chi/v5"
)

// --- auth ---

func (f *FakeBackend) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.passwords[req.Email]; exists {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	}

	user := domain.User{
		ID:        f.idLocked("user"),
		Name:      req.Name,
		Email:     req.Email,
		Role:      "customer",
		CreatedAt: time.Now().UTC(),
	}
	f.users = append(f.users, user)
	f.passwords[req.Email] = req.Password

	token := f.idLocked("tok")
	f.tokens[token] = user.ID

	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (f *FakeBackend) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	password, ok := f.passwords[req.Email]
	if !ok || password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	var user domain.User
	for _, u := range f.users {
		if u.Email == req.Email {
			user = u
			break
		}
	}

	token := f.idLocked("tok")
	f.tokens[token] = user.ID

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (f *FakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	user := f.userForToken(bearerToken(r))
	f.mu.Unlock()

	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// --- products ---

func (f *FakeBackend) handleListProducts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.products)
}

func (f *FakeBackend) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p := f.findProduct(chi.URLParam(r, "id")); p != nil {
		writeJSON(w, http.StatusOK, p)
		return
	}
	writeError(w, http.StatusNotFound, "product not found")
}

func (f *FakeBackend) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := f.decodeProduct(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = f.idLocked("prod")
	for i := range product.Images {
		product.Images[i].ID = f.idLocked("img")
		product.Images[i].ProductID = product.ID
	}
	f.products = append(f.products, product)
	writeJSON(w, http.StatusCreated, product)
}

func (f *FakeBackend) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	update, ok := f.decodeProduct(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.findProduct(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	update.ID = p.ID
	update.Images = p.Images
	*p = update
	writeJSON(w, http.StatusOK, p)
}

func (f *FakeBackend) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "product not found")
}

// decodeProduct accepts the JSON or multipart encoding used by the client
func (f *FakeBackend) decodeProduct(w http.ResponseWriter, r *http.Request) (domain.Product, bool) {
	var product domain.Product

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return product, false
		}
		product.Name = r.FormValue("name")
		product.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
		product.Description = r.FormValue("description")
		product.CategoryID = r.FormValue("category_id")
		product.Stock, _ = strconv.Atoi(r.FormValue("stock"))

		if file, header, err := r.FormFile("image"); err == nil {
			file.Close()
			product.Image = "/uploads/" + header.Filename
		}
		if r.MultipartForm != nil {
			for i, header := range r.MultipartForm.File["additional_images"] {
				product.Images = append(product.Images, domain.ProductImage{
					URL:   "/uploads/" + header.Filename,
					Angle: r.FormValue(fmt.Sprintf("angle_%d", i)),
				})
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return product, false
		}
	}

	if product.Name == "" {
		writeError(w, http.StatusBadRequest, "product name is required")
		return product, false
	}
	return product, true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (f *FakeBackend) findProduct(id string) *domain.Product {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i]
		}
	}
	return nil
}

// --- product images ---

func (f *FakeBackend) handleListImages(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.findProduct(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if p.Images == nil {
		writeJSON(w, http.StatusOK, []domain.ProductImage{})
		return
	}
	writeJSON(w, http.StatusOK, p.Images)
}

func (f *FakeBackend) handleAddImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	file.Close()

	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.findProduct(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	img := domain.ProductImage{
		ID:        f.idLocked("img"),
		ProductID: p.ID,
		URL:       "/uploads/" + header.Filename,
		Angle:     r.FormValue("angle"),
	}
	p.Images = append(p.Images, img)
	writeJSON(w, http.StatusCreated, img)
}

func (f *FakeBackend) handleUpdateImage(w http.ResponseWriter, r *http.Request) {
	var update domain.ProductImage
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	img := f.findImage(chi.URLParam(r, "id"), chi.URLParam(r, "imageID"))
	if img == nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	if update.AltText != "" {
		img.AltText = update.AltText
	}
	if update.Angle != "" {
		img.Angle = update.Angle
	}
	img.IsPrimary = update.IsPrimary
	writeJSON(w, http.StatusOK, img)
}

func (f *FakeBackend) handleReplaceImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	file.Close()

	f.mu.Lock()
	defer f.mu.Unlock()

	img := f.findImage(chi.URLParam(r, "id"), chi.URLParam(r, "imageID"))
	if img == nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	img.URL = "/uploads/" + header.Filename
	writeJSON(w, http.StatusOK, img)
}

func (f *FakeBackend) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.findProduct(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	imageID := chi.URLParam(r, "imageID")
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "image not found")
}

func (f *FakeBackend) findImage(productID, imageID string) *domain.ProductImage {
	p := f.findProduct(productID)
	if p == nil {
		return nil
	}
	for i := range p.Images {
		if p.Images[i].ID == imageID {
			return &p.Images[i]
		}
	}
	return nil
}

// --- categories ---

func (f *FakeBackend) handleListCategories(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.categories)
}

func (f *FakeBackend) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, c := range f.categories {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (f *FakeBackend) handleGetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	slug := chi.URLParam(r, "slug")
	for _, c := range f.categories {
		if c.Slug == slug {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (f *FakeBackend) handleCreateCategory(w http.ResponseWriter, r *http.Request, user *domain.User) {
	category, ok := f.decodeCategory(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.categories {
		if existing.Name == category.Name {
			writeError(w, http.StatusBadRequest, "category already exists")
			return
		}
	}
	category.ID = f.idLocked("cat")
	f.categories = append(f.categories, category)
	writeJSON(w, http.StatusCreated, category)
}

func (f *FakeBackend) handleUpdateCategory(w http.ResponseWriter, r *http.Request, user *domain.User) {
	update, ok := f.decodeCategory(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range f.categories {
		if f.categories[i].ID == id {
			update.ID = id
			f.categories[i] = update
			writeJSON(w, http.StatusOK, update)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

func (f *FakeBackend) handleDeleteCategory(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "category not found")
}

// decodeCategory accepts the JSON or multipart encoding used by the client
func (f *FakeBackend) decodeCategory(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	var category domain.Category

	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return category, false
		}
		category.Name = r.FormValue("name")
		category.Slug = r.FormValue("slug")
		category.Description = r.FormValue("description")
		if file, header, err := r.FormFile("image"); err == nil {
			file.Close()
			category.Image = "/uploads/" + header.Filename
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return category, false
		}
	}

	if category.Name == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return category, false
	}
	return category, true
}

// --- cart ---

func (f *FakeBackend) handleGetCart(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := f.carts[user.ID]
	if lines == nil {
		lines = []domain.CartLine{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": lines})
}

func (f *FakeBackend) handleAddCartItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var line domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	lines := f.carts[user.ID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			f.carts[user.ID] = lines
			writeJSON(w, http.StatusOK, map[string]any{"items": lines})
			return
		}
	}
	f.carts[user.ID] = append(lines, line)
	writeJSON(w, http.StatusCreated, map[string]any{"items": f.carts[user.ID]})
}

func (f *FakeBackend) handleUpdateCartItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	productID := chi.URLParam(r, "productID")
	lines := f.carts[user.ID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = req.Quantity
			writeJSON(w, http.StatusOK, map[string]any{"items": lines})
			return
		}
	}
	writeError(w, http.StatusNotFound, "item not in cart")
}

func (f *FakeBackend) handleRemoveCartItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	productID := chi.URLParam(r, "productID")
	lines := f.carts[user.ID]
	for i := range lines {
		if lines[i].ProductID == productID {
			f.carts[user.ID] = append(lines[:i], lines[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeBackend) handleClearCart(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[user.ID] = nil
	w.WriteHeader(http.StatusNoContent)
}

// --- wishlist ---

func (f *FakeBackend) handleGetWishlist(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := f.wishlists[user.ID]
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (f *FakeBackend) handleAddWishlistItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.wishlists[user.ID] {
		if e.ProductID == req.ProductID {
			writeJSON(w, http.StatusOK, map[string]any{"items": f.wishlists[user.ID]})
			return
		}
	}

	entry := domain.WishlistEntry{ProductID: req.ProductID, AddedAt: time.Now().UTC()}
	if p := f.findProduct(req.ProductID); p != nil {
		entry.Name = p.Name
		entry.Price = p.Price
		entry.Image = p.Image
		entry.Description = p.Description
	}
	f.wishlists[user.ID] = append(f.wishlists[user.ID], entry)
	writeJSON(w, http.StatusCreated, map[string]any{"items": f.wishlists[user.ID]})
}

func (f *FakeBackend) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	productID := chi.URLParam(r, "productID")
	entries := f.wishlists[user.ID]
	for i := range entries {
		if entries[i].ProductID == productID {
			f.wishlists[user.ID] = append(entries[:i], entries[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- orders ---

func (f *FakeBackend) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if user := f.userForToken(bearerToken(r)); user != nil {
		order.UserID = user.ID
	}
	order.ID = f.idLocked("order")
	order.Status = domain.OrderStatusPending
	order.CreatedAt = time.Now().UTC()
	f.orders = append(f.orders, order)
	writeJSON(w, http.StatusCreated, order)
}

func (f *FakeBackend) handleMyOrders(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	mine := []domain.Order{}
	for _, o := range f.orders {
		if o.UserID == user.ID {
			mine = append(mine, o)
		}
	}
	writeJSON(w, http.StatusOK, mine)
}

func (f *FakeBackend) handleAllOrders(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	matches := []domain.Order{}
	for _, o := range f.orders {
		day := o.CreatedAt.Format("2006-01-02")
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		matches = append(matches, o)
	}
	writeJSON(w, http.StatusOK, matches)
}

func (f *FakeBackend) handleOrderDetail(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, o := range f.orders {
		if o.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"order": o, "items": o.Items})
			return
		}
	}
	writeError(w, http.StatusNotFound, "order not found")
}

func (f *FakeBackend) handleUpdateOrder(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var update struct {
		Status          string `json:"status"`
		PaymentMethod   string `json:"payment_method"`
		ShippingAddress string `json:"shipping_address"`
		City            string `json:"city"`
		Pincode         string `json:"pincode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range f.orders {
		if f.orders[i].ID == id {
			if update.Status != "" {
				f.orders[i].Status = update.Status
			}
			if update.PaymentMethod != "" {
				f.orders[i].PaymentMethod = update.PaymentMethod
			}
			if update.ShippingAddress != "" {
				f.orders[i].ShippingAddress = update.ShippingAddress
			}
			if update.City != "" {
				f.orders[i].City = update.City
			}
			if update.Pincode != "" {
				f.orders[i].Pincode = update.Pincode
			}
			writeJSON(w, http.StatusOK, f.orders[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "order not found")
}

func (f *FakeBackend) handleDeleteOrder(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "order not found")
}

// --- users ---

func (f *FakeBackend) handleAllUsers(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.users)
}

func (f *FakeBackend) handleUserDetail(w http.ResponseWriter, r *http.Request, user *domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, u := range f.users {
		if u.ID == id {
			orders := []domain.Order{}
			for _, o := range f.orders {
				if o.UserID == u.ID {
					orders = append(orders, o)
				}
			}
			writeJSON(w, http.StatusOK, map[string]any{"user": u, "orders": orders})
			return
		}
	}
	writeError(w, http.StatusNotFound, "user not found")
}

// --- payments ---

func (f *FakeBackend) handleCreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       f.idLocked("rzp_order"),
		"amount":   req.Amount,
		"currency": "INR",
	})
}

// handleVerifyPayment accepts signatures of the form
// "sig:<order_id>:<payment_id>" and rejects everything else
func (f *FakeBackend) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req domain.PaymentVerification
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expected := "sig:" + req.OrderID + ":" + req.PaymentID
	if req.Signature != expected {
		writeError(w, http.StatusBadRequest, "payment signature mismatch")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payment_id": req.PaymentID, "status": "verified"})
}
