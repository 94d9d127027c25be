// ABOUTME: User-facing notice and prompt strings.
// ABOUTME: Shared by the controller, its renderers, and tests.
package app

const (
	MsgCredentialsRequired = "아이디/비밀번호를 입력하세요"
	MsgLoginOK             = "로그인 성공"
	MsgLoggedOut           = "로그아웃되었습니다"
	MsgRegisterRequired    = "회원가입 필수값을 입력하세요"
	MsgRegisterOK          = "회원가입 성공! 로그인해주세요."

	MsgLoginRequired    = "로그인이 필요합니다"
	MsgPostFieldsNeeded = "제목/내용을 입력하세요"
	MsgTitleTooLong     = "제목은 25자 이내로 입력해주세요"
	MsgNoSelection      = "선택된 게시글이 없습니다"
	MsgPostCreated      = "게시글이 등록되었습니다"
	MsgPostUpdated      = "게시글이 수정되었습니다"
	MsgPostDeleted      = "게시글이 삭제되었습니다"

	MsgCommentRequired = "댓글 내용을 입력하세요"
	MsgCommentDeleted  = "댓글이 삭제되었습니다"

	PromptDeletePost    = "정말 삭제하시겠습니까?"
	PromptDeleteComment = "댓글을 삭제할까요?"
)
