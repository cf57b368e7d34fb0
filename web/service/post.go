package service

import (
	"blog/database"
	"blog/database/model"
)

type PostService struct {
	RecordService[model.Post]
}

func (s *PostService) CreatePost(authorId int, title string, content string) (*model.Post, error) {
	post := &model.Post{
		AuthorId: authorId,
		Title:    title,
		Content:  content,
	}
	if err := s.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost patches title and content; empty fields are left unchanged.
func (s *PostService) UpdatePost(id int, title string, content string) (*model.Post, error) {
	post, err := s.GetById(id)
	if err != nil {
		return nil, err
	}

	if title != "" {
		post.Title = title
	}
	if content != "" {
		post.Content = content
	}

	if err := s.Save(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and, through the cascade constraint, its
// comments.
func (s *PostService) DeletePost(id int) error {
	return s.DeleteById(id)
}

func (s *PostService) GetCommentsByPost(postId int) ([]model.Comment, error) {
	db := database.GetDB()

	var comments []model.Comment
	err := db.Model(model.Comment{}).
		Where("post_id = ?", postId).
		Find(&comments).
		Error
	if err != nil {
		return nil, newStoreError("list comments by post", err)
	}
	return comments, nil
}
