package carcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

// GET /api/v1/cars
// Filters arrive via query binding; staff routes pass includeHidden.
func GetCarsHandler(db *gorm.DB, includeHidden bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

		var filters CarFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cars, hasMore, err := SearchCars(db, SearchParams{
			Query:         c.Query("query"),
			Filters:       filters,
			Offset:        offset,
			Limit:         limit,
			IncludeHidden: includeHidden,
		})
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cars":     cars,
			"offset":   offset,
			"limit":    limit,
			"has_more": hasMore,
			"total":    len(cars),
		})
	}
}

// GET /api/v1/cars/:id
func GetCarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
			return
		}
		car, err := GetCar(db, uint(id))
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, car)
	}
}

// POST /api/v1/admin/cars
func CreateCarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		car, err := CreateCar(db, req)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, car)
	}
}

// PUT /api/v1/admin/cars/:id
func UpdateCarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
			return
		}
		var req UpdateCarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		car, err := UpdateCar(db, uint(id), req)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, car)
	}
}

// DELETE /api/v1/admin/cars/:id
func DeleteCarHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
			return
		}
		if err := DeleteCar(db, uint(id)); err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
	}
}

// POST /api/v1/admin/cars/trims
func CreateTrimHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrimRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		trim, err := CreateTrim(db, req)
		if err != nil {
			c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, trim)
	}
}

// GET /api/v1/cars/trims
func GetTrimsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var trims []models.CarTrim
		if err := db.Order("brand_name, model_name").Find(&trims).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch trims"})
			return
		}
		c.JSON(http.StatusOK, trims)
	}
}
