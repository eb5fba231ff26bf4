package admins

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"
)

// GetUsers lists registered users, paginated, with optional email/username/
// referral-code search.
func GetUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.DB
	query := db.Model(&models.User{})

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ? OR reff_code LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	users := make([]models.User, 0)
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"users": users,
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
