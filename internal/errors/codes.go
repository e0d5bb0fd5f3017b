package errors

// Error code constants returned in the "error" field of failure responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The dashboard maps these to
// notifications; the "message" field is shown to staff as-is.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthBadSignupToken     = "AUTH_BAD_SIGNUP_TOKEN" // admin signup secret mismatch

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // caller is not an admin
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationTooShort     = "VALIDATION_TOO_SHORT"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Places (PLACE_) ====================
	PlaceNotFound = "PLACE_NOT_FOUND"

	// ==================== Branches (BRANCH_) ====================
	BranchNotFound = "BRANCH_NOT_FOUND"

	// ==================== Categories (CATEGORY_) ====================
	CategoryNotFound  = "CATEGORY_NOT_FOUND"
	CategoryInUse     = "CATEGORY_IN_USE"     // referenced by places
	CategoryDuplicate = "CATEGORY_DUPLICATE"  // name retry exhausted

	// ==================== Cuisines (CUISINE_) ====================
	CuisineNotFound  = "CUISINE_NOT_FOUND"
	CuisineInUse     = "CUISINE_IN_USE" // referenced by places/branches
	CuisineDuplicate = "CUISINE_DUPLICATE"

	// ==================== Add requests (REQUEST_) ====================
	RequestNotFound        = "REQUEST_NOT_FOUND"
	RequestAlreadyReviewed = "REQUEST_ALREADY_REVIEWED"
	RequestInvalidAction   = "REQUEST_INVALID_ACTION"
	RequestInvalidProposal = "REQUEST_INVALID_PROPOSAL"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
