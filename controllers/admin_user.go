package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tech-invent-api/models"
	"tech-invent-api/services"
)

// AdminUserController lists portal accounts with submission analytics and
// serves the per-user detail view.
type AdminUserController struct {
	db  *gorm.DB
	svc *services.ProposalService
}

func NewAdminUserController(db *gorm.DB, svc *services.ProposalService) *AdminUserController {
	return &AdminUserController{db: db, svc: svc}
}

type userWithCount struct {
	models.User
	ProposalCount int `json:"proposalCount"`
}

type signupPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// List returns every user with their proposal count, newest account
// first, plus the signups-over-time series.
func (u *AdminUserController) List(c *gin.Context) {
	var users []models.User
	if err := u.db.Order("create_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	type countRow struct {
		UserID int
		Count  int
	}
	var counts []countRow
	if err := u.db.Model(&models.Proposal{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	countByUser := make(map[int]int, len(counts))
	for _, row := range counts {
		countByUser[row.UserID] = row.Count
	}

	result := make([]userWithCount, 0, len(users))
	signups := make(map[string]int)
	for _, user := range users {
		result = append(result, userWithCount{User: user, ProposalCount: countByUser[user.UserID]})
		signups[user.CreateAt.Format("2006-01-02")]++
	}

	series := make([]signupPoint, 0, len(signups))
	for date, count := range signups {
		series = append(series, signupPoint{Date: date, Count: count})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	c.JSON(http.StatusOK, gin.H{
		"users": result,
		"analytics": gin.H{
			"signupsByDate": series,
		},
	})
}

// Get returns one user and their proposals grouped into threads.
func (u *AdminUserController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var user models.User
	if err := u.db.Where("user_id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	threads, err := u.svc.ListThreads(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"proposalThreads": threads,
	})
}
