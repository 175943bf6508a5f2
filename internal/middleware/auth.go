package middleware

import (
	"net/http"
	"strings"

	"github.com/martinmorag/manejo-de-empresas/internal/apierror"
	"github.com/martinmorag/manejo-de-empresas/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
	TenantKey = "tenant"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TenantContext carries the resolved identity of the request: the account and
// the negocio every downstream query is scoped by.
type TenantContext struct {
	UsuarioID uuid.UUID
	NegocioID uuid.UUID
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// TenantAuth resolves the authenticated user to their negocio once per
// request and injects a TenantContext. Accounts without an assigned negocio
// cannot reach tenant-scoped routes.
func TenantAuth(usuarios repository.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}
		usuarioID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token mal formado"))
			return
		}

		usuario, err := usuarios.FindByID(c.Request.Context(), usuarioID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("No se encontró un usuario"))
			return
		}
		if usuario.NegocioID == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, apierror.New("Este usuario no tiene un negocio designado"))
			return
		}

		c.Set(TenantKey, TenantContext{
			UsuarioID: usuario.ID,
			NegocioID: *usuario.NegocioID,
		})
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetTenant retrieves the TenantContext injected by TenantAuth.
func GetTenant(c *gin.Context) TenantContext {
	tenant, _ := c.MustGet(TenantKey).(TenantContext)
	return tenant
}
