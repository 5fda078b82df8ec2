package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vrajpatel/book-keeper/internal/prefs"
	"github.com/vrajpatel/book-keeper/internal/remote"
)

// SessionController relays login/signup to the remote catalog service and
// keeps the returned identity in the user preference group. Credentials are
// never stored locally.
type SessionController struct {
	client    *remote.Client
	userPrefs prefs.Store
}

func NewSessionController(client *remote.Client, userPrefs prefs.Store) *SessionController {
	return &SessionController{
		client:    client,
		userPrefs: userPrefs,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (controller *SessionController) Login(c *gin.Context) {
	if controller.client == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "remote sync is not configured"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	account, err := controller.client.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, remote.ErrInvalidCredentials) {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := controller.saveAccount(account); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, account)
}

func (controller *SessionController) SignUp(c *gin.Context) {
	if controller.client == nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "remote sync is not configured"})
		return
	}

	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" || req.Email == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "name, email, username and password are required"})
		return
	}

	account, err := controller.client.SignUp(c.Request.Context(), req.Name, req.Email, req.Username, req.Password)
	var rejected *remote.RejectedError
	if errors.As(err, &rejected) {
		c.IndentedJSON(http.StatusConflict, gin.H{"error": rejected.Error()})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := controller.saveAccount(account); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, account)
}

func (controller *SessionController) Logout(c *gin.Context) {
	if err := controller.userPrefs.PutInt(prefs.KeyUserID, prefs.SignedOutUserID); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"signed_in": false})
}

func (controller *SessionController) CurrentUser(c *gin.Context) {
	userID := controller.userPrefs.GetInt(prefs.KeyUserID, prefs.SignedOutUserID)
	if userID == prefs.SignedOutUserID {
		c.IndentedJSON(http.StatusOK, gin.H{"signed_in": false})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"signed_in": true,
		"uid":       userID,
		"username":  controller.userPrefs.GetString(prefs.KeyUsername, ""),
		"email":     controller.userPrefs.GetString(prefs.KeyEmail, ""),
		"name":      controller.userPrefs.GetString(prefs.KeyName, ""),
	})
}

func (controller *SessionController) saveAccount(account *remote.Account) error {
	if err := controller.userPrefs.PutInt(prefs.KeyUserID, account.ID); err != nil {
		return err
	}
	if err := controller.userPrefs.PutString(prefs.KeyUsername, account.Username); err != nil {
		return err
	}
	if err := controller.userPrefs.PutString(prefs.KeyEmail, account.Email); err != nil {
		return err
	}
	return controller.userPrefs.PutString(prefs.KeyName, account.Name)
}
