package controllers

import (
	stderrors "errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"unibordima/dto"
	"unibordima/errors"

	"github.com/gin-gonic/gin"
)

const imagesField = "images"

// bindListingForm đọc form multipart (hoặc urlencoded) theo kiểu key có ngoặc vuông
// như location[address], contactInfo[whatsapp], amenities[]
func bindListingForm(c *gin.Context, maxBytes int64) (dto.ListingInput, []*multipart.FileHeader, error) {
	var in dto.ListingInput

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	err := c.Request.ParseMultipartForm(maxBytes)
	if stderrors.Is(err, http.ErrNotMultipart) {
		err = c.Request.ParseForm()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return in, nil, errors.Validation(fmt.Sprintf("Request body exceeds %d MB", maxBytes>>20))
		}
		return in, nil, errors.Validation("Invalid form data")
	}

	values := c.Request.PostForm
	in.Title = formString(values, "title")
	in.Description = formString(values, "description")
	in.Address = formString(values, "location[address]")
	in.City = formString(values, "location[city]")
	in.RoomType = formString(values, "roomType")
	in.Gender = formString(values, "gender")
	in.Status = formString(values, "status")
	in.WhatsApp = formString(values, "contactInfo[whatsapp]")
	in.Phone = formString(values, "contactInfo[phone]")
	in.Email = formString(values, "contactInfo[email]")
	in.LandlordName = formString(values, "landlord[name]")
	in.LandlordContact = formString(values, "landlord[contact]")
	in.Amenities = formList(values, "amenities")
	in.Rules = formList(values, "rules")

	numbers := []struct {
		key string
		dst **float64
	}{
		{"price", &in.Price},
		{"distance", &in.Distance},
		{"location[coordinates][lat]", &in.Lat},
		{"location[coordinates][lng]", &in.Lng},
	}
	for _, n := range numbers {
		v, err := formFloat(values, n.key)
		if err != nil {
			return in, nil, err
		}
		*n.dst = v
	}

	var files []*multipart.FileHeader
	if c.Request.MultipartForm != nil {
		files = c.Request.MultipartForm.File[imagesField]
	}
	return in, files, nil
}

func formString(values url.Values, key string) *string {
	if _, ok := values[key]; !ok {
		return nil
	}
	v := values.Get(key)
	return &v
}

// Chuỗi rỗng coi như không gửi
func formFloat(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.Validation(key + " must be a number")
	}
	return &v, nil
}

// formList nhận cả "amenities[]" lẫn "amenities" lặp lại
func formList(values url.Values, key string) *[]string {
	raw, ok := values[key+"[]"]
	if !ok {
		raw, ok = values[key]
	}
	if !ok {
		return nil
	}
	list := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return &list
}
