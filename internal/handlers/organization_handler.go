package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Calebbuffleben/EAD/internal/services"
	"github.com/Calebbuffleben/EAD/pkg/logger"
)

type OrganizationHandler struct {
	svc services.OrganizationService
	log *logger.Logger
}

func NewOrganizationHandler(svc services.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, log: log}
}

// GET /api/teacher-organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.svc.ListOrganizations()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// GET /api/teacher-organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	org, err := h.svc.GetOrganization(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// POST /api/teacher-organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var in services.CreateOrganizationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	org, err := h.svc.CreateOrganization(in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// PUT /api/teacher-organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateOrganizationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	org, err := h.svc.UpdateOrganization(id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// DELETE /api/teacher-organizations/:id
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOrganization(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GET /api/teacher-organizations/:id/team-members
func (h *OrganizationHandler) ListTeamMembers(c *gin.Context) {
	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	members, err := h.svc.ListTeamMembers(orgID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// GET /api/teacher-organizations/:id/team-members/:memberId
func (h *OrganizationHandler) GetTeamMember(c *gin.Context) {
	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return
	}
	member, err := h.svc.GetTeamMember(orgID, memberID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /api/teacher-organizations/:id/team-members
func (h *OrganizationHandler) CreateTeamMember(c *gin.Context) {
	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var in services.CreateTeamMemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member, err := h.svc.CreateTeamMember(orgID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// PUT /api/teacher-organizations/:id/team-members/:memberId
func (h *OrganizationHandler) UpdateTeamMember(c *gin.Context) {
	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return
	}
	var in services.UpdateTeamMemberInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	member, err := h.svc.UpdateTeamMember(orgID, memberID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DELETE /api/teacher-organizations/:id/team-members/:memberId
func (h *OrganizationHandler) DeleteTeamMember(c *gin.Context) {
	orgID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "memberId")
	if !ok {
		return
	}
	if err := h.svc.DeleteTeamMember(orgID, memberID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
