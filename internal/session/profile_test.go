package session

import (
	"context"
	"strings"
	"testing"

	"github.com/tastybites/tastybites-client/internal/models"
)

func TestAddAddress_BadPincode(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	before := b.total()

	for _, pincode := range []string{"1234", "1234567", "41100a", ""} {
		res := store.AddAddress(context.Background(), models.Address{
			AddressLine1: "1 Main St",
			City:         "Pune",
			Pincode:      pincode,
		})
		if res.Success {
			t.Errorf("AddAddress with pincode %q succeeded; want failure", pincode)
		}
		if res.Error != "Pincode must be a 6-digit number" {
			t.Errorf("error = %q; want the pincode message", res.Error)
		}
	}
	if b.total() != before {
		t.Errorf("pincode failures must not reach the network")
	}
}

func TestAddAddress_MissingFields(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	res := store.AddAddress(context.Background(), models.Address{City: "Pune", Pincode: "411001"})
	if res.Success || res.Error != "Address line 1 is required" {
		t.Errorf("unexpected result: %+v", res)
	}
	res = store.AddAddress(context.Background(), models.Address{AddressLine1: "1 Main St", Pincode: "411001"})
	if res.Success || res.Error != "City is required" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := loggedInStore(t, b)
	before := b.total()

	res := store.ChangePassword(context.Background(), testPassword, "weak")
	if res.Success || res.Error != errWeakPassword {
		t.Errorf("unexpected result: %+v", res)
	}
	if res := store.ChangePassword(context.Background(), "", testPassword); res.Success {
		t.Errorf("expected failure for missing current password")
	}
	if b.total() != before {
		t.Errorf("validation failures must not reach the network")
	}
}

func TestUpdateProfile_AdoptsServerCopy(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, file := loggedInStore(t, b)
	b.mu.Lock()
	b.user.Name = "Alice Updated"
	b.mu.Unlock()

	// The fake echoes its own user for profile reads; the store must adopt
	// it rather than patch the name locally.
	if res := store.UpdateProfile(context.Background(), "Alice Updated", ""); !res.Success {
		t.Fatalf("update failed: %s", res.Error)
	}
	user := store.User()
	if user == nil || user.Name != "Alice Updated" {
		t.Errorf("profile not adopted: %+v", user)
	}
	st, err := file.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.User == nil || st.User.Name != "Alice Updated" {
		t.Errorf("profile not persisted: %+v", st.User)
	}
}

func TestMenuReads_ArePublic(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	if _, res := store.FetchMenu(context.Background()); !res.Success {
		t.Errorf("anonymous menu read failed: %s", res.Error)
	}
	if _, res := store.FetchCategories(context.Background()); !res.Success {
		t.Errorf("anonymous categories read failed: %s", res.Error)
	}
}

func TestSendContactMessage_Validation(t *testing.T) {
	b := newFakeBackend()
	defer b.close()

	store, _ := newTestStore(t, b)
	res := store.SendContactMessage(context.Background(), "Alice", "", "hello")
	if res.Success || !strings.Contains(res.Error, "required") {
		t.Errorf("unexpected result: %+v", res)
	}
}
