package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzCompanyOnly  = "AUTHZ_COMPANY_ONLY"
	AuthzNotOwner     = "AUTHZ_NOT_OWNER"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput      = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID         = "VALIDATION_INVALID_ID"
	ValidationInvalidStatus     = "VALIDATION_INVALID_STATUS"
	ValidationInvalidTransition = "VALIDATION_INVALID_TRANSITION"
	ValidationRequired          = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CAR_/PART_) ====================
	CarNotFound     = "CAR_NOT_FOUND"
	CarNotAvailable = "CAR_NOT_AVAILABLE"
	PartNotFound    = "PART_NOT_FOUND"

	// ==================== Cart / Orders (CART_/ORDER_) ====================
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"
	OrderNotFound    = "ORDER_NOT_FOUND"

	// ==================== Purchases (PURCHASE_) ====================
	PurchaseNotFound = "PURCHASE_NOT_FOUND"

	// ==================== Test drives (TESTDRIVE_) ====================
	TestDriveNotFound = "TESTDRIVE_NOT_FOUND"

	// ==================== Loans (LOAN_) ====================
	LoanNotFound = "LOAN_NOT_FOUND"
	LoanLocked   = "LOAN_LOCKED"

	// ==================== Companies (COMPANY_) ====================
	CompanyNotFound         = "COMPANY_NOT_FOUND"
	CompanyRequestNotFound  = "COMPANY_REQUEST_NOT_FOUND"
	CompanyRequestReviewed  = "COMPANY_REQUEST_REVIEWED"
	CompanyUsernameConflict = "COMPANY_USERNAME_CONFLICT"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
