package shopserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	memberhttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/http/mapper"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-api/internal/shared/address"
	"github.com/Apurer/go-gin-shop-api/internal/shared/projection"
)

// MemberAPI wires HTTP transport with the members bounded context service.
type MemberAPI struct {
	service memberports.Service
}

// NewMemberAPI creates a MemberAPI backed by the provided service.
func NewMemberAPI(service memberports.Service) MemberAPI {
	return MemberAPI{service: service}
}

// Get /api/v1/members
// Lists members in their entity shape
func (api *MemberAPI) MembersV1(c *gin.Context) {
	members, err := api.service.FindMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberhttpmapper.FromDomainMembers(members))
}

// Post /api/v1/members
// Registers a member from the entity-shaped body
func (api *MemberAPI) SaveMemberV1(c *gin.Context) {
	var payload memberhttpmapper.Member
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	id, err := api.service.Join(c.Request.Context(), payload.Name, address.FromView(payload.Address))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberhttpmapper.CreateMemberResponse{ID: id})
}

// Get /api/v2/members
// Lists members wrapped in a count/data envelope
func (api *MemberAPI) MembersV2(c *gin.Context) {
	members, err := api.service.FindMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.Map(members, memberhttpmapper.ToMemberDto))
}

// Post /api/v2/members
// Registers a member by name
func (api *MemberAPI) SaveMemberV2(c *gin.Context) {
	var payload memberhttpmapper.CreateMemberRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	id, err := api.service.Join(c.Request.Context(), payload.Name, address.Address{})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberhttpmapper.CreateMemberResponse{ID: id})
}

// Get /api/v2/members/:id
// Finds a member by id
func (api *MemberAPI) GetMemberV2(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	member, err := api.service.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberhttpmapper.FromDomainMember(member))
}

// Put /api/v2/members/:id
// Renames a member
func (api *MemberAPI) UpdateMemberV2(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload memberhttpmapper.UpdateMemberRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	member, err := api.service.Update(c.Request.Context(), id, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, memberhttpmapper.UpdateMemberResponse{ID: member.ID, Name: member.Name})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		problems.BadRequest(c, "invalid "+name+": "+err.Error())
		return 0, false
	}
	return id, true
}
