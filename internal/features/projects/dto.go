package projects

type CreateProjectRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Color       string `json:"color"       binding:"omitempty,hexcolor"`
}

type UpdateProjectRequestDTO struct {
	Name        *string        `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string        `json:"description" binding:"omitempty,max=2000"`
	Color       *string        `json:"color"       binding:"omitempty,hexcolor"`
	Status      *ProjectStatus `json:"status"`
}

type ListProjectsResponseDTO struct {
	Projects []*Project `json:"projects"`
}
