package http

import (
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMy(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// GetMy implements CompanyHandler.
func (h *companyHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := h.companyService.GetMyCompany(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpdateMy implements CompanyHandler. The logo arrives as multipart field "logo".
func (h *companyHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req company.UpdateCompanyRequest
	if isMultipart(r) {
		file, header, ok := decodeMultipart(w, r, &req, "logo", "UpdateCompany")
		if !ok {
			return
		}
		if file != nil {
			defer file.Close()
			req.Logo = file
			req.LogoHeader = header
		}
	} else if !decodeJSON(w, r, &req, "UpdateCompany") {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.companyService.UpdateMyCompany(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company updated successfully", resp)
}
