package lists

import (
	"time"

	"philcali.me/movies/internal/data"
)

type MovieList struct {
	Id         string    `json:"listId"`
	Name       string    `json:"name"`
	IsDefault  bool      `json:"isDefault"`
	IsPublic   bool      `json:"isPublic"`
	Owner      *string   `json:"owner"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type MovieListInput struct {
	Name     *string `json:"name"`
	IsPublic *bool   `json:"isPublic"`
}

func (m *MovieListInput) ToData(owner string) data.MovieListInputDTO {
	return data.MovieListInputDTO{
		Name:     m.Name,
		IsPublic: m.IsPublic,
		Owner:    &owner,
	}
}

func NewMovieList(list data.MovieListDTO) MovieList {
	return MovieList{
		Id:         list.SK,
		Name:       list.Name,
		IsDefault:  list.IsDefault,
		IsPublic:   list.IsPublic,
		Owner:      list.Owner,
		CreateTime: list.CreateTime,
		UpdateTime: list.UpdateTime,
	}
}

// ListItem is a movie saved to a list; AddedAt is when it was saved.
type ListItem struct {
	ListId  string    `json:"listId"`
	ImdbId  string    `json:"imdbId"`
	Title   string    `json:"title"`
	Year    string    `json:"year"`
	Type    string    `json:"type"`
	Poster  *string   `json:"poster"`
	AddedAt time.Time `json:"addedAt"`
}

type ListItemInput struct {
	ImdbId *string `json:"imdbId"`
	Title  *string `json:"title"`
	Year   *string `json:"year"`
	Type   *string `json:"type"`
	Poster *string `json:"poster"`
}

func (l *ListItemInput) ToData() data.ListItemInputDTO {
	return data.ListItemInputDTO{
		ImdbId: l.ImdbId,
		Title:  l.Title,
		Year:   l.Year,
		Type:   l.Type,
		Poster: l.Poster,
	}
}

func NewListItem(item data.ListItemDTO) ListItem {
	return ListItem{
		ListId:  item.ListId,
		ImdbId:  item.ImdbId,
		Title:   item.Title,
		Year:    item.Year,
		Type:    item.Type,
		Poster:  item.Poster,
		AddedAt: item.CreateTime,
	}
}
