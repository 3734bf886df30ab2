package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/auth"
	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
	"github.com/AndhiniDev/dapur-azka-backend/internal/catalog"
	"github.com/AndhiniDev/dapur-azka-backend/internal/chat"
	"github.com/AndhiniDev/dapur-azka-backend/internal/checkout"
	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/AndhiniDev/dapur-azka-backend/internal/orders"
	"github.com/AndhiniDev/dapur-azka-backend/internal/reviews"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the whole API against an in-memory store, with the admin
// account seeded, and returns the test server.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	store := kvstore.NewMemory(nil)
	carts := cart.NewService(store)
	cat := catalog.NewService(store)
	authSvc := auth.NewService(store, carts)
	require.NoError(t, authSvc.Seed(context.Background(), "admin@example.com", "passwordadmin"))

	reg := orders.NewRegistry(store, nil, "test", nil)
	checkoutSvc := checkout.NewService(carts, cat, reg, authSvc, nil, "test", nil)
	reviewsSvc := reviews.NewService(store)
	chatSvc := chat.NewService(store)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	mw := &Middleware{Tokens: tokens, Auth: authSvc}
	validate := validator.New()

	r := NewRouter()
	(&AuthHandler{Auth: authSvc, Tokens: tokens, Validate: validate}).Register(r, mw)
	(&CatalogHandler{Catalog: cat}).Register(r, mw)
	(&CartHandler{Carts: carts, Catalog: cat, Validate: validate}).Register(r, mw)
	(&CheckoutHandler{Checkout: checkoutSvc, Auth: authSvc, Validate: validate}).Register(r, mw)
	(&OrdersHandler{Registry: reg}).Register(r, mw)
	(&ReviewsHandler{Reviews: reviewsSvc, Catalog: cat, Auth: authSvc, Validate: validate}).Register(r, mw)
	(&ChatHandler{Chats: chatSvc}).Register(r, mw)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func loginAs(t *testing.T, ts *httptest.Server, email, password string) SessionResp {
	t.Helper()
	code, body := doJSON(t, ts, http.MethodPost, "/auth/login", "", LoginReq{Email: email, Password: password})
	require.Equal(t, http.StatusOK, code, string(body))
	var s SessionResp
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func registerAs(t *testing.T, ts *httptest.Server, name, email string) SessionResp {
	t.Helper()
	code, body := doJSON(t, ts, http.MethodPost, "/auth/register", "", RegisterReq{
		Name: name, Email: email, Password: "rahasia123", ConfirmPassword: "rahasia123",
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var s SessionResp
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func TestHealthz(t *testing.T) {
	ts := newTestAPI(t)
	code, body := doJSON(t, ts, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", string(body))
}

func TestPublicCatalog(t *testing.T) {
	ts := newTestAPI(t)

	t.Run("full menu without a token", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodGet, "/products", "", nil)
		require.Equal(t, http.StatusOK, code)
		var ps []catalog.Product
		require.NoError(t, json.Unmarshal(body, &ps))
		assert.Len(t, ps, 12)
	})

	t.Run("category filter", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodGet, "/products?category=Minuman", "", nil)
		require.Equal(t, http.StatusOK, code)
		var ps []catalog.Product
		require.NoError(t, json.Unmarshal(body, &ps))
		require.NotEmpty(t, ps)
		for _, p := range ps {
			assert.Equal(t, "Minuman", p.Category)
		}
	})

	t.Run("missing product is 404", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodGet, "/products/tidak-ada", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestAuthGates(t *testing.T) {
	ts := newTestAPI(t)

	t.Run("cart requires a token", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodGet, "/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodGet, "/cart", "bukan-token", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("customer cannot reach admin routes", func(t *testing.T) {
		s := registerAs(t, ts, "Citra", "citra@example.com")
		code, _ := doJSON(t, ts, http.MethodGet, "/admin/orders", s.Token, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("token stops working after logout", func(t *testing.T) {
		s := registerAs(t, ts, "Dimas", "dimas@example.com")
		code, _ := doJSON(t, ts, http.MethodPost, "/auth/logout", s.Token, nil)
		require.Equal(t, http.StatusNoContent, code)
		code, _ = doJSON(t, ts, http.MethodGet, "/cart", s.Token, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestOrderFlow(t *testing.T) {
	ts := newTestAPI(t)
	customer := registerAs(t, ts, "Andhini", "andhini@example.com")
	admin := loginAs(t, ts, "admin@example.com", "passwordadmin")

	t.Run("checkout against an empty cart is refused", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodPost, "/checkout", customer.Token, CheckoutReq{
			DeliveryDetails: orders.DeliveryDetails{Name: "Andhini", Phone: "0812", Address: "Jl. Melati 3"},
			DeliveryMethod:  "regular",
			PaymentMethod:   "cod",
		})
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("add items to the cart", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodPost, "/cart/items", customer.Token, AddItemReq{ProductID: "mie-ayam-original", Quantity: 2})
		require.Equal(t, http.StatusOK, code, string(body))
		code, body = doJSON(t, ts, http.MethodPost, "/cart/items", customer.Token, AddItemReq{ProductID: "es-teh-manis", Quantity: 1})
		require.Equal(t, http.StatusOK, code, string(body))

		var resp CartResp
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, 3, resp.ItemCount)
		assert.Equal(t, 2*12000+5000, resp.Subtotal)
	})

	var orderID string
	t.Run("checkout produces the order with all totals", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodPost, "/checkout", customer.Token, CheckoutReq{
			DeliveryDetails: orders.DeliveryDetails{Name: "Andhini", Phone: "0812", Address: "Jl. Melati 3"},
			DeliveryMethod:  "regular",
			PaymentMethod:   "bank-transfer-bca",
			OrderNotes:      "jangan pedas",
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var o orders.Order
		require.NoError(t, json.Unmarshal(body, &o))
		orderID = o.ID
		assert.Equal(t, orders.StatusDiproses, o.Status)
		assert.Equal(t, 29000, o.Subtotal)
		assert.Equal(t, 2900, o.Tax)
		assert.Equal(t, 5000, o.ShippingCost)
		assert.Equal(t, 36900, o.Total)

		code, body = doJSON(t, ts, http.MethodGet, "/cart", customer.Token, nil)
		require.Equal(t, http.StatusOK, code)
		var resp CartResp
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Zero(t, resp.ItemCount, "cart must be empty after checkout")
	})

	t.Run("latest order on the dashboard", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodGet, "/orders/latest", customer.Token, nil)
		require.Equal(t, http.StatusOK, code)
		var o orders.Order
		require.NoError(t, json.Unmarshal(body, &o))
		assert.Equal(t, orderID, o.ID)
	})

	t.Run("another customer cannot see the order", func(t *testing.T) {
		other := registerAs(t, ts, "Bima", "bima@example.com")
		code, _ := doJSON(t, ts, http.MethodGet, "/orders/"+orderID, other.Token, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("admin moves the order through the FSM", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodPut, "/admin/orders/"+orderID+"/status", admin.Token, UpdateStatusReq{Status: orders.StatusDikirim})
		require.Equal(t, http.StatusOK, code, string(body))
		var o orders.Order
		require.NoError(t, json.Unmarshal(body, &o))
		assert.Equal(t, orders.StatusDikirim, o.Status)
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodPut, "/admin/orders/"+orderID+"/status", admin.Token, UpdateStatusReq{Status: orders.StatusDiproses})
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("unknown status is a bad request", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodPut, "/admin/orders/"+orderID+"/status", admin.Token, UpdateStatusReq{Status: "Hilang"})
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestReviewRoutes(t *testing.T) {
	ts := newTestAPI(t)
	customer := registerAs(t, ts, "Andhini", "andhini@example.com")

	t.Run("list is public and hides voter ids", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodGet, "/reviews", "", nil)
		require.Equal(t, http.StatusOK, code)
		var resp ReviewListResp
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, 5, resp.Summary.Count)
		for _, r := range resp.Reviews {
			assert.Empty(t, r.VoterIDs)
		}
	})

	t.Run("posting a review carries the profile name", func(t *testing.T) {
		code, body := doJSON(t, ts, http.MethodPost, "/reviews", customer.Token, AddReviewReq{
			ProductID: "soto-ayam", Rating: 5, Comment: "Kuahnya gurih banget!",
		})
		require.Equal(t, http.StatusCreated, code, string(body))
		var r reviews.Review
		require.NoError(t, json.Unmarshal(body, &r))
		assert.Equal(t, "Andhini", r.UserName)
		assert.Equal(t, "Soto Ayam Lamongan", r.ProductName)
	})

	t.Run("double helpful vote is a conflict", func(t *testing.T) {
		code, _ := doJSON(t, ts, http.MethodPost, "/reviews/seed-1/helpful", customer.Token, nil)
		require.Equal(t, http.StatusOK, code)
		code, _ = doJSON(t, ts, http.MethodPost, "/reviews/seed-1/helpful", customer.Token, nil)
		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestChatRoutes(t *testing.T) {
	ts := newTestAPI(t)
	customer := registerAs(t, ts, "Andhini", "andhini@example.com")
	admin := loginAs(t, ts, "admin@example.com", "passwordadmin")

	code, body := doJSON(t, ts, http.MethodPost, "/chat", customer.Token, SendMessageReq{Text: "Halo admin"})
	require.Equal(t, http.StatusCreated, code, string(body))

	code, _ = doJSON(t, ts, http.MethodPost, "/admin/chat/"+customer.User.ID, admin.Token, SendMessageReq{Text: "Halo kak, ada yang bisa dibantu?"})
	require.Equal(t, http.StatusCreated, code)

	code, body = doJSON(t, ts, http.MethodGet, "/chat", customer.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var msgs []chat.Message
	require.NoError(t, json.Unmarshal(body, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.SenderCustomer, msgs[0].Sender)
	assert.Equal(t, chat.SenderAdmin, msgs[1].Sender)
}

func TestAdminUserManagement(t *testing.T) {
	ts := newTestAPI(t)
	registerAs(t, ts, "Citra", "citra@example.com")
	admin := loginAs(t, ts, "admin@example.com", "passwordadmin")

	code, body := doJSON(t, ts, http.MethodGet, "/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var accounts []auth.Account
	require.NoError(t, json.Unmarshal(body, &accounts))
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		assert.Empty(t, a.PasswordHash, "hashes must never leave the API")
	}
}
