package router

import (
	"log"

	"chathub-service/model"
	"chathub-service/socketio"
	"chathub-service/store"

	"github.com/zishang520/socket.io/v2/socket"
)

type groupInput struct {
	GroupID     string   `json:"groupId"`
	GroupName   string   `json:"groupName"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"createdBy"`
	Members     []string `json:"members"`
	IsPrivate   bool     `json:"isPrivate"`

	MembersToAdd []string `json:"membersToAdd"`
	AddedBy      string   `json:"addedBy"`
	RemovedBy    string   `json:"removedBy"`
	UserID       string   `json:"userId"`
	ChannelID    string   `json:"channelId"`
}

type groupMessageInput struct {
	GroupID     string   `json:"groupId"`
	ChannelID   string   `json:"channelId"`
	SenderID    string   `json:"senderId"`
	Content     string   `json:"content"`
	MessageType string   `json:"messageType"`
	Mentions    []string `json:"mentions"`
}

func groupEvents(client *socket.Socket) {
	client.On("create_group", func(args ...interface{}) {
		input := groupInput{}
		if !bind(args, &input) {
			return
		}
		createdBy := input.CreatedBy
		if createdBy == "" {
			createdBy = currentUserID(client)
		}
		group, err := store.CreateGroup(input.GroupName, input.Description, createdBy, input.Members, input.IsPrivate)
		if err != nil {
			emitError(client, "group_creation_error", err.Error(), "group rejected")
			return
		}
		members, _ := store.GroupMemberIDs(group.ID)
		payload := map[string]interface{}{
			"success": true,
			"group": map[string]interface{}{
				"groupId":     group.ID,
				"name":        group.Name,
				"description": group.Description,
				"createdBy":   group.CreatedBy,
				"isPrivate":   group.IsPrivate,
				"members":     members,
			},
		}
		client.Emit("group_created", payload)
		for _, member := range members {
			if member != createdBy {
				deliver(member, "group_created", payload)
			}
		}
		publish("group_created", payload)
	})

	client.On("get_user_groups", func(args ...interface{}) {
		input := groupInput{}
		bind(args, &input)
		userID := input.UserID
		if userID == "" {
			userID = currentUserID(client)
		}
		groups, err := store.UserGroups(userID)
		if err != nil {
			log.Printf("get_user_groups: %v", err)
			groups = []model.Group{}
		}
		client.Emit("user_groups", map[string]interface{}{
			"userId": userID,
			"groups": groups,
		})
	})

	client.On("add_group_member", func(args ...interface{}) {
		input := groupInput{}
		if !bind(args, &input) {
			return
		}
		addedBy := input.AddedBy
		if addedBy == "" {
			addedBy = currentUserID(client)
		}
		if err := store.AddGroupMembers(input.GroupID, input.MembersToAdd, addedBy); err != nil {
			emitError(client, "group_error", err.Error(), "could not add members")
			return
		}
		client.Emit("members_added_success", map[string]interface{}{
			"groupId":      input.GroupID,
			"addedMembers": input.MembersToAdd,
			"success":      true,
		})
		for _, member := range input.MembersToAdd {
			deliver(member, "added_to_group", map[string]interface{}{
				"groupId": input.GroupID,
				"addedBy": addedBy,
			})
		}
	})

	client.On("get_group_members", func(args ...interface{}) {
		input := groupInput{}
		if !bind(args, &input) {
			return
		}
		members, err := store.GroupMembers(input.GroupID)
		if err != nil {
			client.Emit("group_error", map[string]interface{}{
				"type":    "group_not_found",
				"groupId": input.GroupID,
			})
			return
		}
		client.Emit("group_members", map[string]interface{}{
			"groupId": input.GroupID,
			"members": members,
		})
	})

	client.On("join_channel", func(args ...interface{}) {
		input := groupInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if userID == "" {
			userID = currentUserID(client)
		}
		if err := store.JoinChannel(input.ChannelID, input.GroupID, userID); err != nil {
			emitError(client, "group_access_error", err.Error(), "cannot join channel")
			return
		}
		client.Emit("joined_channel", map[string]interface{}{
			"channelId": input.ChannelID,
			"userId":    userID,
			"success":   true,
		})
	})

	client.On("leave_channel", func(args ...interface{}) {
		input := groupInput{}
		if !bind(args, &input) {
			return
		}
		userID := input.UserID
		if userID == "" {
			userID = currentUserID(client)
		}
		if err := store.LeaveChannel(input.ChannelID, userID); err != nil {
			log.Printf("leave_channel: %v", err)
			return
		}
		client.Emit("left_channel", map[string]interface{}{
			"channelId": input.ChannelID,
			"userId":    userID,
			"success":   true,
		})
	})

	client.On("send_message", func(args ...interface{}) {
		input := groupMessageInput{}
		if !bind(args, &input) {
			return
		}
		senderID := input.SenderID
		if id := currentUserID(client); id != "" {
			senderID = id
		}
		message, err := store.SaveGroupMessage(input.GroupID, input.ChannelID, senderID, input.Content, input.MessageType, input.Mentions)
		if err != nil {
			if err == store.ErrUnauthorized {
				client.Emit("group_access_error", map[string]interface{}{
					"type":    "unauthorized_access",
					"groupId": input.GroupID,
				})
				return
			}
			emitError(client, "group_access_error", err.Error(), "message rejected")
			return
		}

		payload := map[string]interface{}{
			"messageId":   message.ID,
			"groupId":     message.GroupID,
			"channelId":   message.ChannelID,
			"senderId":    message.SenderID,
			"content":     message.Content,
			"messageType": message.Type,
			"mentions":    message.Mentions,
			"timestamp":   message.CreatedAt.UnixMilli(),
		}
		recipients, err := store.ChannelMemberIDs(input.ChannelID, input.GroupID)
		if err != nil {
			log.Printf("send_message fan-out: %v", err)
			return
		}
		for _, member := range recipients {
			if member == senderID {
				continue
			}
			deliver(member, "receive_message", payload)
		}
		publish("group_message_sent", payload)
	})

	client.On("get_message_history", func(args ...interface{}) {
		input := historyInput{}
		if !bind(args, &input) {
			return
		}
		messages, err := store.ChannelHistory(input.ChannelID, input.Limit, input.Offset)
		if err != nil {
			log.Printf("get_message_history: %v", err)
			messages = []model.Message{}
		}
		client.Emit("message_history", map[string]interface{}{
			"channelId": input.ChannelID,
			"messages":  messages,
			"limit":     input.Limit,
			"offset":    input.Offset,
		})
	})
}

// broadcastToGroup fans an event out to every member except the actor.
func broadcastToGroup(groupID, actorID, eventName string, payload interface{}) {
	members, err := store.GroupMemberIDs(groupID)
	if err != nil {
		return
	}
	for _, member := range members {
		if member == actorID {
			continue
		}
		socketio.Emit(member, eventName, payload)
	}
}
