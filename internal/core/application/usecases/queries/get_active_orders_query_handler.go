package queries

import (
	"context"
)

// GetActiveOrdersQueryHandler returns active orders oldest first, as ordered by
// the repository.
type GetActiveOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetActiveOrdersQueryHandler(reader OrderReader) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{reader: reader}
}

func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active, err := h.reader.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]OrderReadModel, 0, len(active))
	for _, o := range active {
		views = append(views, newOrderReadModel(o))
	}

	return views, nil
}
