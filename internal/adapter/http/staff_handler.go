package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Dineep4/QuickBite/configs"
)

// StaffHandler issues staff tokens against the single shared credential
// pair from config. There is no user store behind this.
type StaffHandler struct {
	cfg configs.Config
}

func NewStaffHandler(cfg configs.Config) *StaffHandler {
	return &StaffHandler{cfg: cfg}
}

type staffLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /staff/login.
func (h *StaffHandler) Login(c *gin.Context) {
	var req staffLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad request body"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.Staff.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Staff.Password)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid staff credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role":     "staff",
		"username": h.cfg.Staff.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(h.cfg.Staff.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Staff.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "role": "staff", "token": signed})
}
