package controllers

import (
	"strconv"

	"unibordima/middleware"
	"unibordima/response"
	"unibordima/services"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	Listings       *services.ListingService
	MaxUploadBytes int64
}

func NewListingController(listings *services.ListingService, maxUploadBytes int64) *ListingController {
	return &ListingController{Listings: listings, MaxUploadBytes: maxUploadBytes}
}

// parseID đọc id trên path; id không hợp lệ coi như không tồn tại
func parseID(c *gin.Context, param, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c, resource)
		return 0, false
	}
	return uint(id), true
}

// GetAllListings godoc
// @Summary      List listings
// @Description  Filter, sort and paginate available listings
// @Tags         listings
// @Produce      json
// @Param        status       query  string  false  "available | rented | pending"
// @Param        minPrice     query  number  false  "Minimum price"
// @Param        maxPrice     query  number  false  "Maximum price"
// @Param        maxDistance  query  number  false  "Maximum distance (km)"
// @Param        roomType     query  string  false  "Single | Shared | Studio | Apartment"
// @Param        gender       query  string  false  "Male | Female | Mixed"
// @Param        sort         query  string  false  "-createdAt | createdAt | price | -price | distance | -averageRating"
// @Param        page         query  int     false  "Page (1-indexed)"
// @Param        limit        query  int     false  "Page size"
// @Success      200  {object}  dto.ListingListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /listings [get]
func (ctl *ListingController) GetAllListings(c *gin.Context) {
	q, err := services.ParseListingQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := ctl.Listings.ListListings(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"count":    len(page.Listings),
		"total":    page.Total,
		"page":     page.Page,
		"pages":    page.Pages,
		"listings": page.Listings,
	})
}

// SearchListings godoc
// @Summary  Full-text search over available listings
// @Tags     listings
// @Produce  json
// @Param    q    query     string  true  "Search text"
// @Success  200  {object}  dto.ListingSearchResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /listings/search [get]
func (ctl *ListingController) SearchListings(c *gin.Context) {
	listings, err := ctl.Listings.SearchListings(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": len(listings), "listings": listings})
}

// GetListing godoc
// @Summary  Get a listing and count the view
// @Tags     listings
// @Produce  json
// @Param    id   path      int  true  "Listing ID"
// @Success  200  {object}  dto.ListingResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /listings/{id} [get]
func (ctl *ListingController) GetListing(c *gin.Context) {
	id, ok := parseID(c, "id", "Listing")
	if !ok {
		return
	}

	listing, err := ctl.Listings.GetListing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}

// CreateListing godoc
// @Summary   Create a listing
// @Tags      listings
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     images  formData  file  false  "Listing images"
// @Success   201  {object}  dto.ListingResponse
// @Failure   400  {object}  dto.ErrorResponse
// @Failure   401  {object}  dto.ErrorResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /listings [post]
func (ctl *ListingController) CreateListing(c *gin.Context) {
	in, files, err := bindListingForm(c, ctl.MaxUploadBytes)
	if err != nil {
		response.Error(c, err)
		return
	}

	adminID, _ := middleware.CurrentUser(c)
	listing, err := ctl.Listings.CreateListing(c.Request.Context(), adminID, in, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"listing": listing})
}

// UpdateListing godoc
// @Summary   Update a listing (partial); new images replace the old ones
// @Tags      listings
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  int  true  "Listing ID"
// @Success   200  {object}  dto.ListingResponse
// @Failure   400  {object}  dto.ErrorResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /listings/{id} [put]
func (ctl *ListingController) UpdateListing(c *gin.Context) {
	id, ok := parseID(c, "id", "Listing")
	if !ok {
		return
	}

	in, files, err := bindListingForm(c, ctl.MaxUploadBytes)
	if err != nil {
		response.Error(c, err)
		return
	}

	listing, err := ctl.Listings.UpdateListing(c.Request.Context(), id, in, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"listing": listing})
}

// DeleteListing godoc
// @Summary   Delete a listing with its reviews and images
// @Tags      listings
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  int  true  "Listing ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /listings/{id} [delete]
func (ctl *ListingController) DeleteListing(c *gin.Context) {
	id, ok := parseID(c, "id", "Listing")
	if !ok {
		return
	}

	if err := ctl.Listings.DeleteListing(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Listing deleted successfully")
}
