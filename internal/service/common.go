package service

import (
	"Mingle/internal/api/dto"
	"Mingle/internal/model"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const timeLayout = "2006-01-02 15:04:05"

// isDuplicateError 判断是否为唯一键冲突
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func toUserDTO(user *model.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.UserID = user.ID
	return userDTO
}

func toUserDTOMap(users []*model.User) map[uint64]*dto.UserDTO {
	mp := make(map[uint64]*dto.UserDTO, len(users))
	for _, user := range users {
		mp[user.ID] = toUserDTO(user)
	}
	return mp
}
