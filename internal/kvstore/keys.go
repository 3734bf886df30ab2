package kvstore

import "fmt"

// Key layout. Per-user keys embed the user id; the rest are shared lists
// owned by the back-office.
const (
	// Auth flag: dapurAzkaAuth:{user_id} -> bool
	KeyAuthFlag = "dapurAzkaAuth:%s"

	// Profile: dapurAzkaUserProfile:{user_id} -> UserProfile
	KeyUserProfile = "dapurAzkaUserProfile:%s"

	// Cart: dapurAzkaCart:{user_id} -> []cart.Line
	KeyCart = "dapurAzkaCart:%s"

	// Snapshot pesanan terakhir utk halaman ringkasan: latestOrder:{user_id}
	KeyLatestOrder = "latestOrder:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Shared lists.
	KeyOrders   = "userOrders"        // -> []orders.Order
	KeyProducts = "adminProducts"     // -> []catalog.Product (override menu bawaan)
	KeyUsers    = "allAppUsers"       // -> []auth.Account
	KeyReviews  = "allProductReviews" // -> []reviews.Review
	KeyChats    = "allUserChats"      // -> []chat.Message
)

func AuthFlagKey(userID string) string    { return fmt.Sprintf(KeyAuthFlag, userID) }
func UserProfileKey(userID string) string { return fmt.Sprintf(KeyUserProfile, userID) }
func CartKey(userID string) string        { return fmt.Sprintf(KeyCart, userID) }
func LatestOrderKey(userID string) string { return fmt.Sprintf(KeyLatestOrder, userID) }

func DedupKey(service, eventID string) string { return fmt.Sprintf(KeyDedup, service, eventID) }
