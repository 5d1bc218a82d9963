package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func statusRequest(t *testing.T, orderID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("PUT", "/admin/api/orders/"+orderID+"/status", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: orderID}}
	return c, w
}

func TestUpdateOrderStatusRejectsInvalidOrderID(t *testing.T) {
	c, w := statusRequest(t, "abc", `{"status":"approved"}`)

	handler := UpdateOrderStatus(nil)
	handler(c)

	if w.Code != 400 {
		t.Fatalf("expected 400 for non-numeric order id, got %d", w.Code)
	}
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	c, w := statusRequest(t, "5", `{"status":"flying"}`)

	handler := UpdateOrderStatus(nil)
	handler(c)

	if w.Code != 400 {
		t.Fatalf("expected 400 for unknown status, got %d", w.Code)
	}
}

func TestUpdateOrderStatusRequiresStatusField(t *testing.T) {
	c, w := statusRequest(t, "5", `{}`)

	handler := UpdateOrderStatus(nil)
	handler(c)

	if w.Code != 400 {
		t.Fatalf("expected 400 for missing status, got %d", w.Code)
	}
}
