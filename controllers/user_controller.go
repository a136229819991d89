package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/middleware"
	"github.com/helpsoluciones/crm-api/models"
	"github.com/helpsoluciones/crm-api/services"
)

// UserRequest is the create/update payload for app users. Password is
// write-only; it is hashed before storage and never echoed back.
type UserRequest struct {
	Nombre   string   `json:"nombre" binding:"required"`
	Usuario  string   `json:"usuario" binding:"required"`
	Cargo    string   `json:"cargo"`
	Email    string   `json:"email"`
	Telefono string   `json:"telefono"`
	Rol      string   `json:"rol"`
	Permisos []string `json:"permisos"`
	Password string   `json:"password"`
}

// ListUsers handles GET /api/v1/users
func ListUsers(c *gin.Context) {
	db := config.GetDB()
	var users []models.User
	if err := db.Order("nombre ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load users",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// CreateUser handles POST /api/v1/users
func CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid user data",
				"details": err.Error(),
			},
		})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Password is required",
			},
		})
		return
	}

	user := models.User{
		Nombre:   req.Nombre,
		Usuario:  strings.ToLower(req.Usuario),
		Cargo:    req.Cargo,
		Email:    req.Email,
		Telefono: req.Telefono,
		Rol:      req.Rol,
		Permisos: req.Permisos,
	}
	if user.Rol == "" {
		user.Rol = models.RoleSales
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HASH_ERROR",
				"message": "Failed to hash password",
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_USER",
					"message": "El nombre de usuario ya existe",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save user",
			},
		})
		return
	}

	services.PublishChange("app_users", "insert")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateUser handles PUT /api/v1/users/:id - the password is re-hashed
// only when a new one is supplied.
func UpdateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid user data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User does not exist",
			},
		})
		return
	}

	user.Nombre = req.Nombre
	user.Usuario = strings.ToLower(req.Usuario)
	user.Cargo = req.Cargo
	user.Email = req.Email
	user.Telefono = req.Telefono
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	user.Permisos = req.Permisos
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "HASH_ERROR",
					"message": "Failed to hash password",
				},
			})
			return
		}
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al actualizar usuario",
			},
		})
		return
	}

	services.PublishChange("app_users", "update")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// DeleteUser handles DELETE /api/v1/users/:id - a user can never delete
// their own account; the guard runs before any store access.
func DeleteUser(c *gin.Context) {
	claims, err := middleware.GetClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	id := c.Param("id")
	if id == claims.Subject {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "No puedes eliminar tu propio usuario",
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error al eliminar usuario",
			},
		})
		return
	}

	services.PublishChange("app_users", "delete")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
