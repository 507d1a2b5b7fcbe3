package restapi

import "taskman/internal/service"

// taskResource is a task as the API encodes it. The server's primary key is
// "_id"; "id" is accepted as well and both collapse into service.Task.ID.
type taskResource struct {
	MongoID     string `json:"_id,omitempty"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status,omitempty"`
}

func (r taskResource) toTask() service.Task {
	id := r.MongoID
	if id == "" {
		id = r.ID
	}
	return service.Task{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      service.Status(r.Status),
	}
}

// taskEnvelope decodes both {"task": {...}} and a bare task object.
type taskEnvelope struct {
	Task *taskResource `json:"task"`
	taskResource
}

func (e taskEnvelope) task() service.Task {
	if e.Task != nil {
		return e.Task.toTask()
	}
	return e.taskResource.toTask()
}

// taskBody is the create/update request body.
type taskBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status,omitempty"`
}

func newTaskBody(in service.TaskInput) taskBody {
	return taskBody{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      string(in.Status),
	}
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
