package errors

// 응답 메시지 코드
// 클라이언트는 message 값으로 분기하므로 기존 값을 바꾸지 않는다

const (
	Success = "SUCCESS"
	SignIn  = "SIGNIN"
	SignUp  = "SIGNUP"

	// ==================== 요청 형식 ====================
	KeyError    = "KEY_ERROR"    // 필수 필드 누락
	InvalidKey  = "INVALID_KEY"  // 필수 필드 누락 (SMS 발송)
	InvalidKeys = "INVALID_KEYS" // 잘못된 경로/쿼리
	InvalidForm = "INVALID_FORM" // 업로드 폼 검증 실패

	// ==================== 인증 ====================
	Deny                     = "DENY"                       // 인증번호 불일치
	AuthRequired             = "UNAUTHORIZED"               // 로그인 필요
	InvalidToken             = "INVALID_TOKEN"              // 잘못된 토큰
	ExpiredToken             = "EXPIRED_TOKEN"              // 토큰 만료
	InvalidUser              = "INVALID_USER"               // 존재하지 않는 사용자 토큰
	InvalidPhoneNumber       = "INVALID_PHONENUMBER"        // 010으로 시작하지 않음
	InvalidPhoneNumberLength = "INVALID_PHONENUMBER_LENGTH" // 11자리가 아님
	DuplicatedPhoneNumber    = "DUPLICATED_PHONENUMBER"     // 휴대폰 번호 중복
	DuplicatedNickname       = "DUPLICATED_NICKNAME"        // 닉네임 중복

	// ==================== 리소스 ====================
	NoProduct                 = "NO_PRODUCT"
	NoSellingProduct          = "NO_SELLING_PRODUCT"
	UserDoesNotExist          = "USER_DOES_NOT_EXIST"
	FullAddressDoesNotExist   = "FULL_ADDRESS_DOES_NOT_EXIST"
	AddressDoesNotExist       = "ADDRESS_DOES_NOT_EXIST"
	OrderStatusDoesNotExist   = "ORDER_STATUS_DOES_NOT_EXIST"
	ProductDoesNotExist       = "PRODUCT_DOES_NOT_EXIST"
	CategoryDoesNotExist      = "CATEGORY_DOES_NOT_EXIST"
	ResourceNotFound          = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists     = "RESOURCE_ALREADY_EXISTS"
	ResourceReferenceNotFound = "RESOURCE_REFERENCE_NOT_FOUND"
	RequiredFieldMissing      = "REQUIRED_FIELD_MISSING"

	// ==================== 업로드 ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== 내부 오류 ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
)
