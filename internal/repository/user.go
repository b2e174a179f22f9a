package repository

import (
	"context"
	"log"

	"hnreader/internal/models"
)

type HNUserRepository struct {
	source UserSource
}

func NewHNUserRepository(source UserSource) *HNUserRepository {
	return &HNUserRepository{source: source}
}

// UserByID 用户没有类型标记，只过滤缺失
func (r *HNUserRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	rec, err := r.source.User(ctx, id)
	if err != nil {
		log.Printf("[Repo] 获取用户 %s 失败: %v", id, err)
		return nil, nil
	}
	if rec == nil {
		return nil, nil
	}
	user := models.NewUserFromRecord(rec)
	return &user, nil
}

func (r *HNUserRepository) UsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	recs, err := r.source.Users(ctx, ids)
	if err != nil {
		log.Printf("[Repo] 批量获取用户失败: %v", err)
		return []models.User{}, nil
	}
	users := make([]models.User, 0, len(recs))
	for _, rec := range recs {
		if rec != nil {
			users = append(users, models.NewUserFromRecord(rec))
		}
	}
	return users, nil
}

// SearchUsers HN API 不支持搜索，永远返回空
func (r *HNUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	log.Printf("[Repo] 用户搜索未实现 (query=%q)", query)
	return []models.User{}, nil
}
