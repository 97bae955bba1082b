package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// PageParams holds offset/limit pagination shared by list endpoints.
type PageParams struct {
	From int `form:"from" binding:"omitempty,min=0"`
	Size int `form:"size" binding:"omitempty,min=1,max=100"`
}

// Normalize applies defaults for unset pagination values.
func (p *PageParams) Normalize() {
	if p.Size < 1 {
		p.Size = 20
	}
	if p.From < 0 {
		p.From = 0
	}
}
