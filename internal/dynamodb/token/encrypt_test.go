package token_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/movies/internal/dynamodb/token"
)

func TestEncryptionMarshaler(t *testing.T) {
	marshaler := token.NewGCM()
	accountId := "moviebuff"
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "moviebuff:ListItem:5c1e"},
		"SK": &types.AttributeValueMemberS{Value: "tt0133093"},
	}

	t.Run("thing==Unmarshal(Marshal(thing))", func(t *testing.T) {
		token, err := marshaler.Marshal(accountId, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", lastKey)
		}
		otherKey, err := marshaler.Unmarshal(accountId, token)
		if err != nil {
			t.Fatalf("Failed to unmarshal token: %s", err)
		}
		if value, ok := otherKey["SK"]; ok {
			if svalue, ok := value.(*types.AttributeValueMemberS); ok {
				if svalue.Value != "tt0133093" {
					t.Errorf("otherKey SK is %s", svalue.Value)
				}
			} else {
				t.Error("otherKey SK is not an S type")
			}
		} else {
			t.Errorf("otherKey does not contain SK: %s", otherKey)
		}
	})

	t.Run("len(token)==nil", func(t *testing.T) {
		var emptyMap map[string]types.AttributeValue
		token, err := marshaler.Marshal(accountId, emptyMap)
		if err != nil {
			t.Fatalf("Threw an error on marshal: %s", err)
		}
		if token != nil {
			t.Fatalf("Whoa %s is not nil!", *token)
		}
		startKey, err := marshaler.Unmarshal(accountId, nil)
		if err != nil || startKey != nil {
			t.Fatalf("Expected nil start key for nil token, got %v, %v", startKey, err)
		}
	})

	t.Run("acountA!=accountB", func(t *testing.T) {
		token, err := marshaler.Marshal(accountId, lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", lastKey)
		}
		otherKey, err := marshaler.Unmarshal("someone-else", token)
		if err == nil {
			t.Fatalf("Expected an err but received, %v", otherKey)
		}
		if otherKey != nil {
			t.Fatalf("Should not have decrypted %s", otherKey)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := marshaler.Unmarshal(accountId, aws.String("not a token")); err == nil {
			t.Fatal("Expected malformed token to fail")
		}
	})
}
