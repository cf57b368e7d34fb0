package service

import (
	"blog/database"
)

// RecordService collects the gorm plumbing shared by every entity service.
// Mutations run in their own transaction; a failed write rolls back and
// surfaces as StoreError.
type RecordService[T any] struct{}

// GetById returns the record or ErrNotFound.
func (s *RecordService[T]) GetById(id int) (*T, error) {
	db := database.GetDB()

	obj := new(T)
	err := db.Where("id = ?", id).First(obj).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, newStoreError("get record", err)
	}
	return obj, nil
}

func (s *RecordService[T]) List() ([]T, error) {
	db := database.GetDB()

	var objs []T
	if err := db.Find(&objs).Error; err != nil {
		return nil, newStoreError("list records", err)
	}
	return objs, nil
}

func (s *RecordService[T]) Create(obj *T) (err error) {
	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	if dbErr := tx.Create(obj).Error; dbErr != nil {
		err = newStoreError("create record", dbErr)
	}
	return err
}

func (s *RecordService[T]) Save(obj *T) (err error) {
	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	if dbErr := tx.Save(obj).Error; dbErr != nil {
		err = newStoreError("save record", dbErr)
	}
	return err
}

// DeleteById removes the record. Deleting a record that is already gone
// reports ErrNotFound so the check-then-act race in the controllers degrades
// to a 404 rather than a silent success.
func (s *RecordService[T]) DeleteById(id int) (err error) {
	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			tx.Commit()
		} else {
			tx.Rollback()
		}
	}()

	result := tx.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		err = newStoreError("delete record", result.Error)
		return err
	}
	if result.RowsAffected == 0 {
		err = ErrNotFound
	}
	return err
}
