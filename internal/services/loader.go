package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hnreader/internal/controllers"
	"hnreader/internal/models"
	"hnreader/internal/presenters"
	"hnreader/internal/utils"
)

const (
	DefaultListRefreshInterval = 300000 * time.Millisecond
	DefaultThreadDepth         = 2
	defaultReplyFanOut         = 10

	msgStoriesFailed   = "Failed to fetch stories"
	msgCommentNotFound = "Comment not found"
	msgUserNotFound    = "User not found"
)

type StoryAPI interface {
	GetTopStories(ctx context.Context, limit int) controllers.Result[[]models.Story]
	GetStoriesByCategory(ctx context.Context, category string, limit int) controllers.Result[[]models.Story]
	GetStoryDetails(ctx context.Context, storyID int) controllers.Result[*models.Story]
}

type CommentAPI interface {
	GetComments(ctx context.Context, commentIDs []int) controllers.Result[[]models.Comment]
	GetCommentsForStory(ctx context.Context, storyID int) controllers.Result[[]models.Comment]
	GetComment(ctx context.Context, commentID int) controllers.Result[*models.Comment]
	GetReplies(ctx context.Context, commentID int) controllers.Result[[]models.Comment]
}

type UserAPI interface {
	GetUser(ctx context.Context, id string) controllers.Result[*models.User]
}

// LoadError 信封失败或数据为空时返回，Message 直接展示给用户
type LoadError struct {
	Message  string
	NotFound bool
}

func (e *LoadError) Error() string { return e.Message }

// IsNotFound 判断是否为 "不存在" 类错误
func IsNotFound(err error) bool {
	var le *LoadError
	return errors.As(err, &le) && le.NotFound
}

func failed(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &LoadError{Message: message}
}

// LoaderConfig 缓存策略和楼层展开参数
type LoaderConfig struct {
	ListRefreshInterval time.Duration
	MaxStale            time.Duration
	ThreadDepth         int
	FanOut              int
}

// ThreadView 单条评论及其回复
type ThreadView struct {
	Root    presenters.CommentViewModel   `json:"root"`
	Replies []presenters.CommentViewModel `json:"replies"`
}

// Loader 把控制器和展示器绑定到按 key 缓存的 SWR 缓存上，页面只和它打交道
type Loader struct {
	stories  StoryAPI
	comments CommentAPI
	users    UserAPI

	storyPresenter   *presenters.StoryPresenter
	commentPresenter *presenters.CommentPresenter
	userPresenter    *presenters.UserPresenter

	cache       *utils.SWRCache
	listPolicy  utils.Policy
	itemPolicy  utils.Policy
	threadDepth int
	fanOut      int
}

func NewLoader(
	stories StoryAPI,
	comments CommentAPI,
	users UserAPI,
	storyPresenter *presenters.StoryPresenter,
	commentPresenter *presenters.CommentPresenter,
	userPresenter *presenters.UserPresenter,
	cache *utils.SWRCache,
	cfg LoaderConfig,
) *Loader {
	if cfg.ListRefreshInterval <= 0 {
		cfg.ListRefreshInterval = DefaultListRefreshInterval
	}
	if cfg.ThreadDepth <= 0 {
		cfg.ThreadDepth = DefaultThreadDepth
	}
	if cfg.FanOut <= 0 {
		cfg.FanOut = defaultReplyFanOut
	}
	return &Loader{
		stories:          stories,
		comments:         comments,
		users:            users,
		storyPresenter:   storyPresenter,
		commentPresenter: commentPresenter,
		userPresenter:    userPresenter,
		cache:            cache,
		listPolicy: utils.Policy{
			RefreshInterval:       cfg.ListRefreshInterval,
			MaxStale:              cfg.MaxStale,
			RevalidateOnFocus:     false,
			RevalidateOnReconnect: true,
		},
		itemPolicy: utils.Policy{
			MaxStale:              cfg.MaxStale,
			RevalidateOnFocus:     false,
			RevalidateOnReconnect: true,
		},
		threadDepth: cfg.ThreadDepth,
		fanOut:      cfg.FanOut,
	}
}

func TopStoriesKey(limit int) string { return fmt.Sprintf("top-stories:%d", limit) }

func CategoryStoriesKey(category string, limit int) string {
	return fmt.Sprintf("%s-stories:%d", category, limit)
}

func StoryDetailsKey(id int) string  { return fmt.Sprintf("story-details:%d", id) }
func StoryCommentsKey(id int) string { return fmt.Sprintf("story-comments:%d", id) }
func RepliesKey(id int) string       { return fmt.Sprintf("replies:%d", id) }
func UserKey(id string) string       { return "user:" + id }

// Mutate 让 key 失效，下次访问同步重新获取
func (l *Loader) Mutate(key string) {
	l.cache.Delete(key)
}

func (l *Loader) TopStories(ctx context.Context, limit int) ([]presenters.StoryViewModel, error) {
	return utils.Fetch(ctx, l.cache, TopStoriesKey(limit), l.listPolicy, func(ctx context.Context) ([]presenters.StoryViewModel, error) {
		res := l.stories.GetTopStories(ctx, limit)
		if !res.Success {
			return nil, failed(res.Error, msgStoriesFailed)
		}
		return l.storyPresenter.PresentMultiple(res.Data), nil
	})
}

func (l *Loader) CategoryStories(ctx context.Context, category string, limit int) ([]presenters.StoryViewModel, error) {
	return utils.Fetch(ctx, l.cache, CategoryStoriesKey(category, limit), l.listPolicy, func(ctx context.Context) ([]presenters.StoryViewModel, error) {
		res := l.stories.GetStoriesByCategory(ctx, category, limit)
		if !res.Success {
			return nil, failed(res.Error, msgStoriesFailed)
		}
		return l.storyPresenter.PresentMultiple(res.Data), nil
	})
}

func (l *Loader) StoryDetails(ctx context.Context, id int) (*presenters.StoryViewModel, error) {
	return utils.Fetch(ctx, l.cache, StoryDetailsKey(id), l.itemPolicy, func(ctx context.Context) (*presenters.StoryViewModel, error) {
		res := l.stories.GetStoryDetails(ctx, id)
		if !res.Success {
			return nil, failed(res.Error, controllers.MsgStoryNotFound)
		}
		if res.Data == nil {
			return nil, &LoadError{Message: controllers.MsgStoryNotFound, NotFound: true}
		}
		vm := l.storyPresenter.Present(*res.Data)
		return &vm, nil
	})
}

// CommentsForStory 返回按楼层展开后的扁平列表，失败时列表为空（非 nil）
func (l *Loader) CommentsForStory(ctx context.Context, storyID int) ([]presenters.CommentViewModel, error) {
	comments, err := utils.Fetch(ctx, l.cache, StoryCommentsKey(storyID), l.itemPolicy, func(ctx context.Context) ([]presenters.CommentViewModel, error) {
		res := l.comments.GetCommentsForStory(ctx, storyID)
		if !res.Success {
			return nil, failed(res.Error, controllers.MsgCommentsFailed)
		}
		return l.expand(ctx, res.Data, 0), nil
	})
	if err != nil {
		return []presenters.CommentViewModel{}, err
	}
	return comments, nil
}

// Thread 加载单条评论和它下面的回复，展开方式与详情页相同
func (l *Loader) Thread(ctx context.Context, commentID int) (*ThreadView, error) {
	return utils.Fetch(ctx, l.cache, RepliesKey(commentID), l.itemPolicy, func(ctx context.Context) (*ThreadView, error) {
		root := l.comments.GetComment(ctx, commentID)
		if !root.Success {
			return nil, failed(root.Error, controllers.MsgCommentFailed)
		}
		if root.Data == nil {
			return nil, &LoadError{Message: msgCommentNotFound, NotFound: true}
		}
		replies := l.comments.GetReplies(ctx, commentID)
		if !replies.Success {
			return nil, failed(replies.Error, controllers.MsgCommentRepliesFailed)
		}
		return &ThreadView{
			Root:    l.commentPresenter.Present(*root.Data, 0),
			Replies: l.expand(ctx, replies.Data, 1),
		}, nil
	})
}

func (l *Loader) User(ctx context.Context, id string) (*presenters.UserViewModel, error) {
	return utils.Fetch(ctx, l.cache, UserKey(id), l.itemPolicy, func(ctx context.Context) (*presenters.UserViewModel, error) {
		res := l.users.GetUser(ctx, id)
		if !res.Success {
			return nil, failed(res.Error, controllers.MsgUserFailed)
		}
		if res.Data == nil {
			return nil, &LoadError{Message: msgUserNotFound, NotFound: true}
		}
		vm := l.userPresenter.Present(*res.Data)
		return &vm, nil
	})
}

// expand 递归展开回复，直到 threadDepth 层；更深的回复和加载失败的回复用占位代替
func (l *Loader) expand(ctx context.Context, comments []models.Comment, level int) []presenters.CommentViewModel {
	if level+1 >= l.threadDepth {
		return l.commentPresenter.PresentWithReplies(comments, level)
	}

	children := make([][]presenters.CommentViewModel, len(comments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.fanOut)
	for i, c := range comments {
		if !c.HasReplies() {
			continue
		}
		g.Go(func() error {
			res := l.comments.GetComments(gctx, c.Kids)
			if !res.Success {
				children[i] = placeholders(c.Kids, level+1)
				return nil
			}
			children[i] = l.expand(gctx, res.Data, level+1)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]presenters.CommentViewModel, 0, len(comments))
	for i, c := range comments {
		out = append(out, l.commentPresenter.Present(c, level))
		out = append(out, children[i]...)
	}
	return out
}

func placeholders(ids []int, level int) []presenters.CommentViewModel {
	out := make([]presenters.CommentViewModel, 0, len(ids))
	for _, id := range ids {
		out = append(out, presenters.Placeholder(id, level))
	}
	return out
}
