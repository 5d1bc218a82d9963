package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

const testSecret = "unit-test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func authedContext(t *testing.T, header string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c, w
}

func TestUserAuthInjectsUserID(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"userId": userID.Hex(),
		"role":   models.RoleCustomer,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	c, _ := authedContext(t, "Bearer "+token)
	UserAuth(testSecret)(c)

	if c.IsAborted() {
		t.Fatal("expected valid token to pass")
	}
	value, ok := c.Get("userId")
	if !ok {
		t.Fatal("expected userId in context")
	}
	if got := value.(primitive.ObjectID); got != userID {
		t.Fatalf("expected userId %s, got %s", userID.Hex(), got.Hex())
	}
}

func TestUserAuthRejectsMissingHeader(t *testing.T) {
	c, w := authedContext(t, "")
	UserAuth(testSecret)(c)

	if !c.IsAborted() || w.Code != 401 {
		t.Fatalf("expected 401 abort, got aborted=%v code=%d", c.IsAborted(), w.Code)
	}
}

func TestUserAuthRejectsForeignSignature(t *testing.T) {
	token := signedToken(t, "some-other-secret", jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	c, w := authedContext(t, "Bearer "+token)
	UserAuth(testSecret)(c)

	if !c.IsAborted() || w.Code != 401 {
		t.Fatalf("expected 401 abort, got aborted=%v code=%d", c.IsAborted(), w.Code)
	}
}

func TestUserAuthRejectsMissingUserIDClaim(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"role": models.RoleCustomer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	c, w := authedContext(t, "Bearer "+token)
	UserAuth(testSecret)(c)

	if !c.IsAborted() || w.Code != 401 {
		t.Fatalf("expected 401 abort, got aborted=%v code=%d", c.IsAborted(), w.Code)
	}
}

func TestAdminAuthRejectsCustomerRole(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   models.RoleCustomer,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	c, w := authedContext(t, "Bearer "+token)
	AdminAuth(testSecret)(c)

	if !c.IsAborted() || w.Code != 403 {
		t.Fatalf("expected 403 abort, got aborted=%v code=%d", c.IsAborted(), w.Code)
	}
}

func TestAdminAuthAdmitsAdminAndInjectsIdentity(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"userId": userID.Hex(),
		"role":   models.RoleAdmin,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	c, _ := authedContext(t, "Bearer "+token)
	AdminAuth(testSecret)(c)

	if c.IsAborted() {
		t.Fatal("expected admin token to pass")
	}
	if role, _ := c.Get("role"); role != models.RoleAdmin {
		t.Fatalf("expected admin role in context, got %v", role)
	}
	if value, _ := c.Get("userId"); value.(primitive.ObjectID) != userID {
		t.Fatal("expected userId in context")
	}
}
