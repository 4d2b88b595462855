package audit

import (
	"context"

	"github.com/openwave-social/openwave/pkg/log"
)

// Audit actions.
const (
	ActionRegister      = "user.register"
	ActionLogin         = "user.login"
	ActionLoginFailed   = "user.login_failed"
	ActionLogout        = "user.logout"
	ActionRefreshToken  = "user.refresh_token"
	ActionUpdateProfile = "user.update_profile"
	ActionUploadAvatar  = "user.upload_avatar"
	ActionCreatePost    = "post.create"
	ActionUpdatePost    = "post.update"
	ActionDeletePost    = "post.delete"
	ActionLikePost      = "post.like"
	ActionUnlikePost    = "post.unlike"
	ActionCreateComment = "comment.create"
	ActionUpdateComment = "comment.update"
	ActionDeleteComment = "comment.delete"
	ActionFollow        = "social.follow"
	ActionUnfollow      = "social.unfollow"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogTarget emits an audit log entry naming the object acted on.
func LogTarget(ctx context.Context, action string, userID, targetID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldTargetID, targetID).
		Msg(msg)
}

// LogWithDetail emits an audit log entry with an extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
