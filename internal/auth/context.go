package auth

import (
	"istasyon-backend/internal/database"
	"istasyon-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StationIDFromCtx: token'daki istasyon kapsamını çöz. Her kayıt bir
// istasyona ait olduğundan istasyonsuz token ile iş yapılamaz.
func StationIDFromCtx(c *fiber.Ctx) (uint, error) {
	sVal := c.Locals(CtxStationIDKey)
	sPtr, ok := sVal.(*uint)
	if !ok || sPtr == nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "İstasyon bilgisi bulunamadı")
	}
	return *sPtr, nil
}

// PersonnelIDFromCtx: pompacı token'ındaki personel id. Yönetici
// token'larında nil döner.
func PersonnelIDFromCtx(c *fiber.Ctx) *uint {
	pVal := c.Locals(CtxPersonnelIDKey)
	if pPtr, ok := pVal.(*uint); ok {
		return pPtr
	}
	return nil
}

// UserInfoFromCtx: audit log için kullanıcı id + adı. Pompacı
// token'larında user yoktur, personel adı kullanılır.
func UserInfoFromCtx(c *fiber.Ctx) (uint, string) {
	if pID := PersonnelIDFromCtx(c); pID != nil {
		var p models.Personnel
		if err := database.DB.First(&p, "id = ?", *pID).Error; err == nil {
			return 0, p.Name
		}
		return 0, "pompacı"
	}

	userIDVal := c.Locals(CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, ""
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return userID, ""
	}
	return userID, user.Name
}
