package service

import (
	"errors"
	"time"

	"fambalance/internal/models"
	"fambalance/internal/repository"
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func todayDate(now func() time.Time) string {
	return models.FormatDate(now())
}
