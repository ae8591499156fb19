package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler {
	return &MemberHandler{}
}

// List handles GET /api/members — the cohort→member taxonomy, for clients
// building filter UIs.
func (h *MemberHandler) List(c fiber.Ctx) error {
	cohorts := make([]fiber.Map, 0, len(roster.Cohorts))
	for _, cohort := range roster.Cohorts {
		members, err := roster.MembersOf(cohort)
		if err != nil {
			continue
		}
		cohorts = append(cohorts, fiber.Map{
			"cohort":  cohort,
			"members": members,
		})
	}
	return c.JSON(fiber.Map{"cohorts": cohorts})
}
