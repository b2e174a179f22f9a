package presenters

import (
	"time"

	"hnreader/internal/models"
)

type UserViewModel struct {
	ID              string `json:"id"`
	Karma           int    `json:"karma"`
	CreatedDate     string `json:"createdDate"`
	AccountAgeDays  int    `json:"accountAgeDays"`
	HasAbout        bool   `json:"hasAbout"`
	About           string `json:"about,omitempty"`
	SubmissionCount int    `json:"submissionCount"`
}

type UserPresenter struct {
	now func() time.Time
}

func NewUserPresenter() *UserPresenter {
	return &UserPresenter{now: time.Now}
}

func (p *UserPresenter) WithClock(now func() time.Time) *UserPresenter {
	return &UserPresenter{now: now}
}

func (p *UserPresenter) Present(user models.User) UserViewModel {
	return UserViewModel{
		ID:              user.ID,
		Karma:           user.Karma,
		CreatedDate:     user.CreatedDate(),
		AccountAgeDays:  user.AccountAgeAt(p.now()),
		HasAbout:        user.HasAbout(),
		About:           user.AboutText(),
		SubmissionCount: user.SubmissionCount(),
	}
}
