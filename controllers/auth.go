package controllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tech-invent-api/config"
	"tech-invent-api/mailer"
	"tech-invent-api/middleware"
	"tech-invent-api/models"
	"tech-invent-api/utils"
)

// AuthController handles signup (with OTP verification), login for both
// portals and the profile projection used to pre-fill the proposal form.
type AuthController struct {
	cfg  *config.Config
	db   *gorm.DB
	mail mailer.Sender
}

func NewAuthController(cfg *config.Config, db *gorm.DB, mail mailer.Sender) *AuthController {
	return &AuthController{cfg: cfg, db: db, mail: mail}
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendSignupOTP issues a verification code for account creation. Emails
// already attached to an account are rejected up front.
func (a *AuthController) SendSignupOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = utils.SanitizeInput(req.Email)

	var existing models.User
	if err := a.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	a.issueOTP(c, req.Email, mailer.SignupOTPEmail)
}

// SendProposalOTP issues a verification code used while filling in the
// proposal form. No account check here.
func (a *AuthController) SendProposalOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.issueOTP(c, utils.SanitizeInput(req.Email), mailer.ProposalOTPEmail)
}

func (a *AuthController) issueOTP(c *gin.Context, email string, render func(code string) (string, string, error)) {
	code, err := generateOTPCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	// A new request invalidates any prior code for the address.
	if err := a.db.Where("email = ?", email).Delete(&models.Otp{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store OTP"})
		return
	}
	if err := a.db.Create(&models.Otp{Email: email, Code: code}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store OTP"})
		return
	}

	subject, html, err := render(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	if err := a.mail.Send([]string{email}, subject, html); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

type signupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	EmployeeID  string `json:"employeeId" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Password    string `json:"password" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// Signup verifies the OTP and creates the account.
func (a *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Email = utils.SanitizeInput(req.Email)

	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var stored models.Otp
	if err := a.db.Where("email = ?", req.Email).First(&stored).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}
	if stored.Code != req.OTP || stored.Expired(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	var existing models.User
	if err := a.db.Where("email = ? OR employee_id = ?", req.Email, req.EmployeeID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email or Employee ID already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		EmployeeID:  req.EmployeeID,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hash),
	}
	if err := a.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	// The code is single use.
	a.db.Where("email = ?", req.Email).Delete(&models.Otp{})

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a portal user and returns a JWT.
func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := a.generateToken(user.UserID, user.Email, false, a.cfg.JWTExpireHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user":    user,
		"message": "Login successful",
	})
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates the review-portal operator against configured
// credentials and returns a short-lived admin token.
func (a *AuthController) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if a.cfg.AdminUsername == "" || req.Username != a.cfg.AdminUsername || req.Password != a.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := a.generateToken(0, req.Username, true, a.cfg.AdminJWTExpireHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Login successful",
	})
}

// Me returns the profile fields the proposal form pre-fills.
func (a *AuthController) Me(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := a.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"facultyCoordinator": user.Name,
		"ecode":              user.EmployeeID,
		"email":              user.Email,
		"contactNumber":      user.PhoneNumber,
	})
}

func (a *AuthController) generateToken(userID int, email string, isAdmin bool, expireHours int) (string, error) {
	claims := middleware.Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.cfg.JWTSecret))
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
