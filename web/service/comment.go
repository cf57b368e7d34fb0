package service

import (
	"blog/database/model"
)

type CommentService struct {
	RecordService[model.Comment]

	postService PostService
}

// CreateComment attaches a comment to an existing post. A vanished post
// surfaces as ErrNotFound.
func (s *CommentService) CreateComment(authorId int, postId int, content string) (*model.Comment, error) {
	if _, err := s.postService.GetById(postId); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		AuthorId: authorId,
		PostId:   postId,
		Content:  content,
	}
	if err := s.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(id int, content string) (*model.Comment, error) {
	comment, err := s.GetById(id)
	if err != nil {
		return nil, err
	}

	if content != "" {
		comment.Content = content
	}

	if err := s.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(id int) error {
	return s.DeleteById(id)
}
