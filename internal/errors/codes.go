package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The admin UI maps these codes to toast messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound    = "CATEGORY_NOT_FOUND"
	CategoryMaxDepth    = "CATEGORY_MAX_DEPTH"
	CategorySelfParent  = "CATEGORY_SELF_PARENT"
	CategoryChildParent = "CATEGORY_CHILD_PARENT"
	CategoryNotLeaf     = "CATEGORY_NOT_LEAF"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductNameExists    = "PRODUCT_NAME_EXISTS"
	ProductImageRequired = "PRODUCT_IMAGE_REQUIRED"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound           = "ORDER_NOT_FOUND"
	OrderEmpty              = "ORDER_EMPTY"
	OrderShippingIncomplete = "ORDER_SHIPPING_INCOMPLETE"

	// ==================== Promos (PROMO_) ====================
	PromoNotFound      = "PROMO_NOT_FOUND"
	PromoImageRequired = "PROMO_IMAGE_REQUIRED"

	// ==================== Booking (BOOKING_) ====================
	ServiceNotFound     = "SERVICE_NOT_FOUND"
	ReservationNotFound = "RESERVATION_NOT_FOUND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== AI (AI_) ====================
	AIUpstreamError  = "AI_UPSTREAM_ERROR"
	AIMalformedReply = "AI_MALFORMED_REPLY"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
